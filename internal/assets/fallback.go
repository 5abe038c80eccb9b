package assets

import (
	"bytes"
	"fmt"
	"image"
	imgcolor "image/color"
	"image/png"

	"github.com/burnishapp/burnish/internal/pipeline"
	"github.com/burnishapp/burnish/pkg/color"
)

// fallbackImage renders a deterministic gradient in the plan's palette.
// It stands in when the image model is unavailable or returns something
// unusable, so asset generation degrades instead of failing the run.
func fallbackImage(req pipeline.AssetRequirement, colors pipeline.ColorSpec) ([]byte, error) {
	top := parseOr(colors.Primary, "#336699")
	bottom := parseOr(colors.Background, "#ffffff")
	if req.Kind == pipeline.AssetDecoration && len(colors.Palette) > 0 {
		top = parseOr(colors.Palette[len(colors.Palette)-1], "#336699")
	}

	w, h := req.Width, req.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		var t float64
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		c := lerpRGB(top, bottom, t)
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, imgcolor.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode fallback image: %w", err)
	}
	return buf.Bytes(), nil
}

func parseOr(hex, fallback string) color.RGB {
	c, err := color.ParseHex(hex)
	if err != nil {
		c, _ = color.ParseHex(fallback)
	}
	return c
}

func lerpRGB(a, b color.RGB, t float64) color.RGB {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGB{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B)}
}
