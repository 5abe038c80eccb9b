package color

import (
	"math"
	"slices"
)

// VisionDeficiency identifies a simulated color-vision deficiency.
type VisionDeficiency string

// Supported deficiency simulations.
const (
	Protanopia   VisionDeficiency = "protanopia"
	Deuteranopia VisionDeficiency = "deuteranopia"
	Tritanopia   VisionDeficiency = "tritanopia"
)

// Deficiencies lists all supported vision deficiency simulations.
var Deficiencies = []VisionDeficiency{Protanopia, Deuteranopia, Tritanopia}

// similarityThreshold is the perceptual delta below which two simulated
// colors are flagged as indistinguishable.
const similarityThreshold = 20.0

// Palette carries the primary color and the semantic colors checked by
// the accessibility pass.
type Palette struct {
	Primary  HSL            `json:"primary"`
	Semantic map[string]HSL `json:"semantic,omitempty"`
}

// Conflict reports two palette colors that become too similar under a
// simulated vision deficiency.
type Conflict struct {
	Deficiency VisionDeficiency `json:"deficiency"`
	A          string           `json:"a"`
	B          string           `json:"b"`
	Delta      float64          `json:"delta"`
}

// EnsureContrast repairs the primary and every semantic color so each
// reaches the target ratio against a white background. Colors that
// cannot reach the target within the iteration budget keep their best
// achieved value.
func EnsureContrast(p Palette, target float64) Palette {
	white := HSL{H: 0, S: 0, L: 1}

	out := Palette{Primary: FixContrast(p.Primary, white, target).Foreground}
	if len(p.Semantic) > 0 {
		out.Semantic = make(map[string]HSL, len(p.Semantic))
		for name, c := range p.Semantic {
			out.Semantic[name] = FixContrast(c, white, target).Foreground
		}
	}

	return out
}

// Simulate approximates how a color appears under a vision deficiency by
// zeroing the affected channel: red for protanopia, green for
// deuteranopia, blue for tritanopia.
func Simulate(c RGB, d VisionDeficiency) RGB {
	switch d {
	case Protanopia:
		return RGB{R: 0, G: c.G, B: c.B}
	case Deuteranopia:
		return RGB{R: c.R, G: 0, B: c.B}
	case Tritanopia:
		return RGB{R: c.R, G: c.G, B: 0}
	default:
		return c
	}
}

// CheckDistinguishable simulates each deficiency over the named palette
// colors and returns every pair whose perceptual distance falls below
// the similarity threshold.
func CheckDistinguishable(colors map[string]HSL) []Conflict {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	// Deterministic pair ordering for stable output.
	slices.Sort(names)

	var conflicts []Conflict
	for _, d := range Deficiencies {
		for i := range names {
			for j := i + 1; j < len(names); j++ {
				a := Simulate(colors[names[i]].RGB(), d)
				b := Simulate(colors[names[j]].RGB(), d)
				delta := DeltaE(a, b)
				if delta < similarityThreshold {
					conflicts = append(conflicts, Conflict{
						Deficiency: d,
						A:          names[i],
						B:          names[j],
						Delta:      delta,
					})
				}
			}
		}
	}

	return conflicts
}

// DeltaE returns the CIE76 color difference between two colors.
func DeltaE(a, b RGB) float64 {
	la, aa, ba := a.lab()
	lb, ab, bb := b.lab()
	return math.Sqrt((la-lb)*(la-lb) + (aa-ab)*(aa-ab) + (ba-bb)*(ba-bb))
}

// lab converts to CIELAB under D65 illumination.
func (c RGB) lab() (l, a, b float64) {
	// sRGB to linear to XYZ.
	rl := linearize(c.R)
	gl := linearize(c.G)
	bl := linearize(c.B)

	x := (0.4124*rl + 0.3576*gl + 0.1805*bl) / 0.95047
	y := 0.2126*rl + 0.7152*gl + 0.0722*bl
	z := (0.0193*rl + 0.1192*gl + 0.9505*bl) / 1.08883

	fx := labF(x)
	fy := labF(y)
	fz := labF(z)

	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116
}
