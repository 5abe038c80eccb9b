package color

// Contrast ratio targets for WCAG conformance levels.
const (
	RatioAA  = 4.5
	RatioAAA = 7.0
)

// maxContrastIterations bounds the lightness-nudging loop in FixContrast.
const maxContrastIterations = 20

// ContrastFix reports the outcome of a contrast repair. Met is false when
// the iteration budget ran out before the target ratio was reached;
// callers must treat that as a soft failure and use the achieved ratio.
type ContrastFix struct {
	Foreground HSL     `json:"foreground"`
	Background HSL     `json:"background"`
	Ratio      float64 `json:"ratio"`
	Met        bool    `json:"met"`
	Iterations int     `json:"iterations"`
}

// FixContrast adjusts the foreground's lightness in 0.1 steps until the
// contrast ratio against the background reaches target or the iteration
// budget is exhausted. The nudge direction depends on which side is
// brighter: a foreground lighter than its background is pushed lighter,
// otherwise darker. The ratio is monotonically non-decreasing across
// iterations; the loop stops early once lightness is pinned at a bound.
func FixContrast(fg, bg HSL, target float64) ContrastFix {
	if target < 1 {
		target = RatioAA
	}

	bgRGB := bg.RGB()
	ratio := ContrastRatio(fg.RGB(), bgRGB)

	lighten := fg.RGB().Luminance() > bgRGB.Luminance()

	iterations := 0
	for ratio < target && iterations < maxContrastIterations {
		var next HSL
		if lighten {
			next = fg.Lighten(0.1)
		} else {
			next = fg.Darken(0.1)
		}

		if next.L == fg.L {
			break // pinned at 0 or 1
		}

		fg = next
		ratio = ContrastRatio(fg.RGB(), bgRGB)
		iterations++
	}

	return ContrastFix{
		Foreground: fg,
		Background: bg,
		Ratio:      ratio,
		Met:        ratio >= target,
		Iterations: iterations,
	}
}
