package color

import "sort"

// HarmonizeStrategy selects how a palette is pulled into harmony.
type HarmonizeStrategy string

// Available harmonization strategies.
const (
	// StrategyHueShift snaps each color's hue to the nearest slot of the
	// palette's detected harmony, anchored on the first color.
	StrategyHueShift HarmonizeStrategy = "hue-shift"
	// StrategySaturationMatch sets every color's saturation to the first
	// color's saturation.
	StrategySaturationMatch HarmonizeStrategy = "saturation-match"
	// StrategyLuminanceSpread redistributes lightness evenly across the
	// palette, preserving each color's relative lightness rank.
	StrategyLuminanceSpread HarmonizeStrategy = "luminance-spread"
)

// Lightness bounds for StrategyLuminanceSpread.
const (
	spreadMinLightness = 0.2
	spreadMaxLightness = 0.8
)

// Harmonize returns a harmonized copy of the palette using the given
// strategy. The first color anchors the palette and is never moved by
// hue-shift or saturation-match. Unknown strategies fall back to
// hue-shift. Empty palettes are returned unchanged.
func Harmonize(colors []HSL, strategy HarmonizeStrategy) []HSL {
	if len(colors) == 0 {
		return colors
	}

	switch strategy {
	case StrategySaturationMatch:
		return matchSaturation(colors)
	case StrategyLuminanceSpread:
		return spreadLuminance(colors)
	default:
		return shiftHues(colors)
	}
}

func shiftHues(colors []HSL) []HSL {
	harmony := DetectHarmony(colors)
	slots := idealHues(harmony, colors[0].H)

	result := make([]HSL, len(colors))
	result[0] = colors[0]

	for i := 1; i < len(colors); i++ {
		c := colors[i]
		best := slots[0]
		bestDist := hueDistance(c.H, slots[0])
		for _, slot := range slots[1:] {
			if d := hueDistance(c.H, slot); d < bestDist {
				best = slot
				bestDist = d
			}
		}
		result[i] = HSL{H: best, S: c.S, L: c.L}
	}

	return result
}

func matchSaturation(colors []HSL) []HSL {
	result := make([]HSL, len(colors))
	base := colors[0].S
	for i, c := range colors {
		result[i] = HSL{H: c.H, S: base, L: c.L}
	}
	return result
}

func spreadLuminance(colors []HSL) []HSL {
	result := make([]HSL, len(colors))
	copy(result, colors)

	if len(colors) == 1 {
		return result
	}

	// Rank colors by current lightness, then assign evenly spread values
	// in rank order so relative ordering is preserved.
	order := make([]int, len(colors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return colors[order[a]].L < colors[order[b]].L
	})

	step := (spreadMaxLightness - spreadMinLightness) / float64(len(colors)-1)
	for rank, idx := range order {
		result[idx].L = spreadMinLightness + float64(rank)*step
	}

	return result
}
