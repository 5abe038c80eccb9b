package composition

import "math"

// BlendMode names a per-channel blend function.
type BlendMode string

// Supported blend modes.
const (
	BlendNormal     BlendMode = "normal"
	BlendMultiply   BlendMode = "multiply"
	BlendScreen     BlendMode = "screen"
	BlendOverlay    BlendMode = "overlay"
	BlendSoftLight  BlendMode = "soft-light"
	BlendHardLight  BlendMode = "hard-light"
	BlendColorDodge BlendMode = "color-dodge"
	BlendColorBurn  BlendMode = "color-burn"
	BlendDarken     BlendMode = "darken"
	BlendLighten    BlendMode = "lighten"
	BlendDifference BlendMode = "difference"
	BlendExclusion  BlendMode = "exclusion"
)

// Pixel is an 8-bit RGB channel triple.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Luminance returns the pixel's relative luminance on a 0-1 scale using
// the Rec. 709 coefficients.
func (p Pixel) Luminance() float64 {
	return (0.2126*float64(p.R) + 0.7152*float64(p.G) + 0.0722*float64(p.B)) / 255
}

// Blend combines base and overlay with the given mode, then applies
// opacity as a final linear mix toward the unblended base. Opacity is
// clamped to [0, 1]; unknown modes behave as normal.
func Blend(mode BlendMode, base, overlay Pixel, opacity float64) Pixel {
	opacity = math.Min(1, math.Max(0, opacity))

	blended := Pixel{
		R: blendChannel(mode, base.R, overlay.R),
		G: blendChannel(mode, base.G, overlay.G),
		B: blendChannel(mode, base.B, overlay.B),
	}

	return Pixel{
		R: mix(base.R, blended.R, opacity),
		G: mix(base.G, blended.G, opacity),
		B: mix(base.B, blended.B, opacity),
	}
}

func blendChannel(mode BlendMode, base, overlay uint8) uint8 {
	b := float64(base) / 255
	o := float64(overlay) / 255

	var r float64
	switch mode {
	case BlendMultiply:
		r = b * o
	case BlendScreen:
		r = 1 - (1-b)*(1-o)
	case BlendOverlay:
		if b < 0.5 {
			r = 2 * b * o
		} else {
			r = 1 - 2*(1-b)*(1-o)
		}
	case BlendSoftLight:
		if o < 0.5 {
			r = b - (1-2*o)*b*(1-b)
		} else {
			var d float64
			if b <= 0.25 {
				d = ((16*b-12)*b + 4) * b
			} else {
				d = math.Sqrt(b)
			}
			r = b + (2*o-1)*(d-b)
		}
	case BlendHardLight:
		// Overlay with the operands swapped.
		if o < 0.5 {
			r = 2 * b * o
		} else {
			r = 1 - 2*(1-b)*(1-o)
		}
	case BlendColorDodge:
		if o >= 1 {
			r = 1
		} else {
			r = math.Min(1, b/(1-o))
		}
	case BlendColorBurn:
		if o <= 0 {
			r = 0
		} else {
			r = 1 - math.Min(1, (1-b)/o)
		}
	case BlendDarken:
		r = math.Min(b, o)
	case BlendLighten:
		r = math.Max(b, o)
	case BlendDifference:
		r = math.Abs(b - o)
	case BlendExclusion:
		r = b + o - 2*b*o
	default:
		r = o
	}

	return uint8(math.Round(math.Min(1, math.Max(0, r)) * 255))
}

func mix(base, blended uint8, opacity float64) uint8 {
	v := float64(base)*(1-opacity) + float64(blended)*opacity
	return uint8(math.Round(v))
}

// BlendSuggestion is a recommended mode and opacity for a layer.
type BlendSuggestion struct {
	Mode    BlendMode `json:"mode"`
	Opacity float64   `json:"opacity"`
}

// SuggestBlend picks a default blend treatment from the layer type and
// the relative luminance of the base versus the overlay content. Light
// overlays on light bases multiply to preserve contrast; dark overlays
// on dark bases screen to stay visible.
func SuggestBlend(t LayerType, baseLum, overlayLum float64) BlendSuggestion {
	light := func(l float64) bool { return l >= 0.5 }

	switch t {
	case LayerBackground:
		return BlendSuggestion{Mode: BlendNormal, Opacity: 1}
	case LayerOverlay:
		if light(baseLum) && light(overlayLum) {
			return BlendSuggestion{Mode: BlendMultiply, Opacity: 0.85}
		}
		if !light(baseLum) && !light(overlayLum) {
			return BlendSuggestion{Mode: BlendScreen, Opacity: 0.85}
		}
		return BlendSuggestion{Mode: BlendOverlay, Opacity: 0.8}
	case LayerDecoration:
		if light(baseLum) {
			return BlendSuggestion{Mode: BlendMultiply, Opacity: 0.7}
		}
		return BlendSuggestion{Mode: BlendScreen, Opacity: 0.7}
	case LayerEffect:
		return BlendSuggestion{Mode: BlendSoftLight, Opacity: 0.6}
	case LayerText:
		return BlendSuggestion{Mode: BlendNormal, Opacity: 1}
	default:
		return BlendSuggestion{Mode: BlendNormal, Opacity: 1}
	}
}
