package typography

import "math"

// ScaleRatio names a modular type scale ratio.
type ScaleRatio string

// Named modular scale ratios.
const (
	RatioMinorSecond     ScaleRatio = "minor-second"
	RatioMajorSecond     ScaleRatio = "major-second"
	RatioMinorThird      ScaleRatio = "minor-third"
	RatioMajorThird      ScaleRatio = "major-third"
	RatioPerfectFourth   ScaleRatio = "perfect-fourth"
	RatioAugmentedFourth ScaleRatio = "augmented-fourth"
	RatioPerfectFifth    ScaleRatio = "perfect-fifth"
	RatioGolden          ScaleRatio = "golden-ratio"
)

var ratios = map[ScaleRatio]float64{
	RatioMinorSecond:     1.067,
	RatioMajorSecond:     1.125,
	RatioMinorThird:      1.2,
	RatioMajorThird:      1.25,
	RatioPerfectFourth:   1.333,
	RatioAugmentedFourth: 1.414,
	RatioPerfectFifth:    1.5,
	RatioGolden:          1.618,
}

// Scale is a modular size hierarchy in pixels, derived from a base size
// and a named ratio.
type Scale struct {
	H1    int `json:"h1"`
	H2    int `json:"h2"`
	H3    int `json:"h3"`
	H4    int `json:"h4"`
	H5    int `json:"h5"`
	H6    int `json:"h6"`
	Body  int `json:"body"`
	Small int `json:"small"`
	Tiny  int `json:"tiny"`
}

// ScaleOptions bounds the generated sizes.
type ScaleOptions struct {
	Ratio ScaleRatio
	// MinSize clamps the smallest generated size. Zero means 8.
	MinSize int
	// MaxSize clamps the largest generated size. Zero means 96.
	MaxSize int
}

// BuildScale computes a modular scale from the base size: h1 through h4
// are integer powers of the ratio above the base (h1 = base x ratio^4
// down to h4 = base x ratio), h5 sits a half step above the body, h6
// shares the body size (differentiated by weight), and small/tiny are
// negative powers. Sizes clamp to [MinSize, MaxSize]. A base at or below
// zero defaults to 16 and an unknown ratio falls back to major-third.
// Re-applying with the same base and ratio yields the same hierarchy.
func BuildScale(base float64, opts ScaleOptions) Scale {
	if base <= 0 {
		base = 16
	}

	ratio, ok := ratios[opts.Ratio]
	if !ok {
		ratio = ratios[RatioMajorThird]
	}

	minSize := opts.MinSize
	if minSize <= 0 {
		minSize = 8
	}
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 96
	}

	step := func(power float64) int {
		size := base * math.Pow(ratio, power)
		v := int(math.Round(size))
		if v < minSize {
			v = minSize
		}
		if v > maxSize {
			v = maxSize
		}
		return v
	}

	return Scale{
		H1:    step(4),
		H2:    step(3),
		H3:    step(2),
		H4:    step(1),
		H5:    step(0.5),
		H6:    step(0),
		Body:  step(0),
		Small: step(-1),
		Tiny:  step(-2),
	}
}

// Ratios returns the named ratios and their values.
func Ratios() map[ScaleRatio]float64 {
	out := make(map[ScaleRatio]float64, len(ratios))
	for k, v := range ratios {
		out[k] = v
	}
	return out
}
