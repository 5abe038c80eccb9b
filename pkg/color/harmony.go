package color

// Harmony identifies a named relationship between hues.
type Harmony string

// Recognized harmony classifications.
const (
	HarmonyMonochromatic Harmony = "monochromatic"
	HarmonyAnalogous     Harmony = "analogous"
	HarmonyComplementary Harmony = "complementary"
	HarmonyTriadic       Harmony = "triadic"
)

// ComplementaryOptions controls variant generation for Complementary.
type ComplementaryOptions struct {
	// IncludeVariants adds a lighter and a darker variant of the
	// complement to the result.
	IncludeVariants bool
	// VariantAmount is the lightness delta for variants. Defaults to 0.15.
	VariantAmount float64
}

// Complementary returns the base color and its hue+180 complement.
// With IncludeVariants, a lighter and darker variant of the complement
// follow. Saturation and lightness are preserved except in variants.
func Complementary(base HSL, opts ComplementaryOptions) []HSL {
	comp := base.Shift(180)
	result := []HSL{base, comp}

	if opts.IncludeVariants {
		amount := opts.VariantAmount
		if amount == 0 {
			amount = 0.15
		}
		result = append(result, comp.Lighten(amount), comp.Darken(amount))
	}

	return result
}

// SplitComplementary returns the base plus the two hues 30 degrees either
// side of the complement, with saturation scaled by 0.8.
func SplitComplementary(base HSL) []HSL {
	left := base.Shift(150)
	right := base.Shift(210)
	left.S = clamp01(left.S * 0.8)
	right.S = clamp01(right.S * 0.8)
	return []HSL{base, left, right}
}

// Analogous returns count colors stepped 30 degrees apart starting at the
// base hue. Counts below 2 are clamped to 2; saturation and lightness are
// preserved.
func Analogous(base HSL, count int) []HSL {
	if count < 2 {
		count = 2
	}

	result := make([]HSL, 0, count)
	for i := range count {
		result = append(result, base.Shift(float64(i)*30))
	}
	return result
}

// Triadic returns the base plus hues rotated +120 and +240 degrees,
// sharing the base's saturation and lightness.
func Triadic(base HSL) []HSL {
	return []HSL{base, base.Shift(120), base.Shift(240)}
}

// Tetradic returns the base plus hues rotated +90, +180, and +270 degrees.
func Tetradic(base HSL) []HSL {
	return []HSL{base, base.Shift(90), base.Shift(180), base.Shift(270)}
}

// DetectHarmony classifies a set of colors by the average pairwise
// circular hue distance: under 15 degrees is monochromatic, under 45
// analogous, over 150 complementary, and anything between is treated as
// triadic. Fewer than two colors classify as monochromatic.
func DetectHarmony(colors []HSL) Harmony {
	if len(colors) < 2 {
		return HarmonyMonochromatic
	}

	var total float64
	var pairs int
	for i := range colors {
		for j := i + 1; j < len(colors); j++ {
			total += hueDistance(colors[i].H, colors[j].H)
			pairs++
		}
	}

	avg := total / float64(pairs)
	switch {
	case avg < 15:
		return HarmonyMonochromatic
	case avg < 45:
		return HarmonyAnalogous
	case avg > 150:
		return HarmonyComplementary
	default:
		return HarmonyTriadic
	}
}

// idealHues returns the canonical hue slots for a harmony type anchored
// at the given base hue.
func idealHues(h Harmony, base float64) []float64 {
	switch h {
	case HarmonyComplementary:
		return []float64{base, normalizeHue(base + 180)}
	case HarmonyTriadic:
		return []float64{base, normalizeHue(base + 120), normalizeHue(base + 240)}
	case HarmonyAnalogous:
		return []float64{base, normalizeHue(base + 30), normalizeHue(base - 30)}
	default:
		return []float64{base}
	}
}
