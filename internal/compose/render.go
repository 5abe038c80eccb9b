package compose

import (
	"image"
	imgcolor "image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/burnishapp/burnish/pkg/color"
	"github.com/burnishapp/burnish/pkg/composition"
)

// blankPage synthesizes a solid page in the given background color,
// falling back to white when the color does not parse.
func blankPage(w, h int, hex string) image.Image {
	bg, err := color.ParseHex(hex)
	if err != nil {
		bg = color.RGB{R: 255, G: 255, B: 255}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill := imgcolor.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return img
}

// averageLuminance samples the image on a coarse grid and returns the
// mean relative luminance, 0-1.
func averageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	const samples = 32
	stepX := max(1, bounds.Dx()/samples)
	stepY := max(1, bounds.Dy()/samples)

	var total float64
	var count int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := img.At(x, y).RGBA()
			p := composition.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
			total += p.Luminance()
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// render flattens the scene bottom-up: each layer is scaled to its
// effective bounds and composited with its blend mode and opacity.
func render(s *scene, canvas composition.Canvas) *image.RGBA {
	w := int(math.Round(canvas.Width))
	h := int(math.Round(canvas.Height))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	white := imgcolor.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(x, y, white)
		}
	}

	for _, layer := range s.manager.RenderOrder() {
		src, ok := s.images[layer.ID]
		if !ok {
			continue
		}

		lx, ly, lw, lh := layer.EffectiveBounds()
		tw := int(math.Round(lw))
		th := int(math.Round(lh))
		if tw < 1 || th < 1 {
			continue
		}

		scaled := image.NewRGBA(image.Rect(0, 0, tw, th))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

		compositeLayer(dst, scaled, int(math.Round(lx)), int(math.Round(ly)), layer.Blend, layer.Opacity)
	}

	return dst
}

// compositeLayer blends src onto dst at (x0, y0) using the layer's
// blend mode. Source alpha scales the layer opacity per pixel.
func compositeLayer(dst, src *image.RGBA, x0, y0 int, mode composition.BlendMode, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	bounds := src.Bounds()
	dstBounds := dst.Bounds()

	for sy := bounds.Min.Y; sy < bounds.Max.Y; sy++ {
		dy := y0 + sy - bounds.Min.Y
		if dy < dstBounds.Min.Y || dy >= dstBounds.Max.Y {
			continue
		}
		for sx := bounds.Min.X; sx < bounds.Max.X; sx++ {
			dx := x0 + sx - bounds.Min.X
			if dx < dstBounds.Min.X || dx >= dstBounds.Max.X {
				continue
			}

			sp := src.RGBAAt(sx, sy)
			if sp.A == 0 {
				continue
			}

			// RGBA stores premultiplied channels; recover straight
			// values before blending.
			overlay := composition.Pixel{
				R: unpremultiply(sp.R, sp.A),
				G: unpremultiply(sp.G, sp.A),
				B: unpremultiply(sp.B, sp.A),
			}

			bp := dst.RGBAAt(dx, dy)
			base := composition.Pixel{R: bp.R, G: bp.G, B: bp.B}

			out := composition.Blend(mode, base, overlay, opacity*float64(sp.A)/255)
			dst.SetRGBA(dx, dy, imgcolor.RGBA{R: out.R, G: out.G, B: out.B, A: 255})
		}
	}
}

func unpremultiply(c, a uint8) uint8 {
	if a == 0 || a == 255 {
		return c
	}
	v := int(c) * 255 / int(a)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// thumbnail downscales the render to the fixed thumbnail width,
// preserving aspect ratio.
func thumbnail(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Dx() <= thumbnailWidth {
		return img
	}

	th := int(math.Round(float64(thumbnailWidth) * float64(bounds.Dy()) / float64(bounds.Dx())))
	if th < 1 {
		th = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, thumbnailWidth, th))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), img, bounds, xdraw.Src, nil)
	return out
}
