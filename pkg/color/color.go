// Package color implements the color engine: pure functions over hex/HSL
// values for harmony generation, contrast repair, palette harmonization,
// and accessibility checks. Out-of-range numeric inputs are clamped,
// never rejected.
package color

import (
	"fmt"
	"math"
	"strings"
)

// HSL represents a color as hue (degrees, 0-360), saturation and
// lightness (both 0-1).
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// RGB represents a color as 0-255 channel values.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ParseHex parses a #RRGGBB or #RGB hex color. The leading # is optional.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return RGB{}, fmt.Errorf("invalid hex color: %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color: %q", s)
	}

	return RGB{R: r, G: g, B: b}, nil
}

// Hex formats the color as a lowercase #rrggbb string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSL converts the color to HSL.
func (c RGB) HSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}

	return HSL{H: h * 60, S: s, L: l}
}

// RGB converts the color to RGB. Hue wraps modulo 360; saturation and
// lightness are clamped to [0, 1].
func (c HSL) RGB() RGB {
	h := normalizeHue(c.H) / 360
	s := clamp01(c.S)
	l := clamp01(c.L)

	if s == 0 {
		v := uint8(math.Round(l * 255))
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToChannel(p, q, h+1.0/3)
	g := hueToChannel(p, q, h)
	b := hueToChannel(p, q, h-1.0/3)

	return RGB{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
	}
}

// Hex formats the HSL color as a hex string.
func (c HSL) Hex() string {
	return c.RGB().Hex()
}

// Shift returns a copy with the hue rotated by deg degrees.
func (c HSL) Shift(deg float64) HSL {
	return HSL{H: normalizeHue(c.H + deg), S: c.S, L: c.L}
}

// Lighten returns a copy with lightness increased by amount, clamped.
func (c HSL) Lighten(amount float64) HSL {
	return HSL{H: c.H, S: c.S, L: clamp01(c.L + amount)}
}

// Darken returns a copy with lightness decreased by amount, clamped.
func (c HSL) Darken(amount float64) HSL {
	return HSL{H: c.H, S: c.S, L: clamp01(c.L - amount)}
}

// Luminance returns the WCAG relative luminance of the color (0-1).
func (c RGB) Luminance() float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between two colors (1-21).
func ContrastRatio(a, b RGB) float64 {
	la := a.Luminance()
	lb := b.Luminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func linearize(v uint8) float64 {
	f := float64(v) / 255
	if f <= 0.04045 {
		return f / 12.92
	}
	return math.Pow((f+0.055)/1.055, 2.4)
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// hueDistance returns the circular distance between two hues in degrees (0-180).
func hueDistance(a, b float64) float64 {
	d := math.Abs(normalizeHue(a) - normalizeHue(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}
