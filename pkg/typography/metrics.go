package typography

import "math"

// MetricsOptions carries the context that line-height and letter-spacing
// heuristics consider beyond the raw font size.
type MetricsOptions struct {
	Category Category
	Purpose  Purpose
	// LineLength is the expected characters per line. Zero means unknown.
	LineLength int
	// Bold marks bold text; large bold headings pull letter-spacing negative.
	Bold bool
	// AllCaps marks uppercase-only text, which gains positive tracking.
	AllCaps bool
}

const baseLineHeight = 1.5

// LineHeight returns a unitless line-height for the given font size in
// pixels. The base of 1.5 is adjusted down for large sizes and up for
// small sizes and long lines, with serif and monospace faces gaining a
// little extra and heading or display text shrinking toward 1.1-1.2.
func LineHeight(size float64, opts MetricsOptions) float64 {
	if size <= 0 {
		size = 16
	}

	lh := baseLineHeight

	switch {
	case size >= 32:
		lh -= 0.25
	case size >= 24:
		lh -= 0.15
	case size <= 12:
		lh += 0.15
	}

	if opts.LineLength > 75 {
		lh += 0.1
	}

	switch opts.Category {
	case CategorySerif:
		lh += 0.05
	case CategoryMonospace:
		lh += 0.1
	}

	if opts.Purpose == PurposeHeadingBody && size >= 24 || opts.Purpose == PurposeDisplay {
		// Headings and display text sit tighter.
		lh = math.Min(lh, 1.2)
		if size >= 48 {
			lh = 1.1
		}
	}

	return round2(math.Max(1.0, lh))
}

// LetterSpacing returns tracking in em units. The default is 0; large or
// bold headings pull negative, all-caps text pushes positive.
func LetterSpacing(size float64, opts MetricsOptions) float64 {
	if size <= 0 {
		size = 16
	}

	spacing := 0.0

	if size >= 32 {
		spacing -= 0.02
	}
	if opts.Bold && size >= 24 {
		spacing -= 0.01
	}
	if opts.AllCaps {
		spacing += 0.05
	}

	return round3(spacing)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
