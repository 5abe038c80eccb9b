package typography

import "math"

// ReadabilityInput describes the text treatment being scored.
type ReadabilityInput struct {
	// FontSize in pixels. 16-18 is ideal.
	FontSize float64
	// LineHeight is unitless. 1.4-1.6 is ideal.
	LineHeight float64
	// LineLength in characters. 45-75 is ideal.
	LineLength int
	// ContrastRatio against the background, per WCAG.
	ContrastRatio float64
}

// ReadabilityScore rates a text treatment 0-100. Each input contributes
// a bounded bonus or penalty around a neutral midpoint of 50; the result
// is clamped.
func ReadabilityScore(in ReadabilityInput) int {
	score := 50.0

	switch {
	case in.FontSize >= 16 && in.FontSize <= 18:
		score += 15
	case in.FontSize >= 14 && in.FontSize < 16:
		score += 8
	case in.FontSize > 18 && in.FontSize <= 24:
		score += 10
	case in.FontSize > 0 && in.FontSize < 12:
		score -= 15
	}

	switch {
	case in.LineHeight >= 1.4 && in.LineHeight <= 1.6:
		score += 15
	case in.LineHeight >= 1.2 && in.LineHeight < 1.4:
		score += 5
	case in.LineHeight > 1.6 && in.LineHeight <= 1.8:
		score += 5
	case in.LineHeight > 0 && in.LineHeight < 1.1:
		score -= 10
	}

	switch {
	case in.LineLength >= 45 && in.LineLength <= 75:
		score += 10
	case in.LineLength > 75 && in.LineLength <= 95:
		score -= 5
	case in.LineLength > 95:
		score -= 10
	case in.LineLength > 0 && in.LineLength < 30:
		score -= 5
	}

	switch {
	case in.ContrastRatio >= 7:
		score += 10
	case in.ContrastRatio >= 4.5:
		score += 5
	case in.ContrastRatio > 0 && in.ContrastRatio < 3:
		score -= 15
	}

	return int(math.Max(0, math.Min(100, score)))
}
