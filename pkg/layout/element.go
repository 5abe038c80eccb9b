// Package layout implements the layout engine: grid application,
// alignment guide detection and correction, spacing optimization, and
// visual-flow arrangement. All operations are pure; callers receive
// adjusted copies plus a change log, never mutated inputs.
package layout

import "math"

// Kind classifies a layout element.
type Kind string

// Element kinds.
const (
	KindHeading Kind = "heading"
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindShape   Kind = "shape"
	KindCaption Kind = "caption"
)

// Bounds is an axis-aligned rectangle in canvas pixels.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x-coordinate of the right edge.
func (b Bounds) Right() float64 { return b.X + b.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (b Bounds) Bottom() float64 { return b.Y + b.Height }

// CenterX returns the horizontal center.
func (b Bounds) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center.
func (b Bounds) CenterY() float64 { return b.Y + b.Height/2 }

// Area returns the rectangle's area.
func (b Bounds) Area() float64 { return b.Width * b.Height }

// Intersects reports whether two rectangles overlap.
func (b Bounds) Intersects(o Bounds) bool {
	return b.X < o.Right() && o.X < b.Right() && b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Union returns the smallest rectangle containing both.
func (b Bounds) Union(o Bounds) Bounds {
	x := math.Min(b.X, o.X)
	y := math.Min(b.Y, o.Y)
	return Bounds{
		X:      x,
		Y:      y,
		Width:  math.Max(b.Right(), o.Right()) - x,
		Height: math.Max(b.Bottom(), o.Bottom()) - y,
	}
}

// Element is a positioned item on the canvas.
type Element struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Bounds Bounds `json:"bounds"`
	ZIndex int    `json:"z_index"`
	// FontSize applies to text-bearing kinds; zero when unknown.
	FontSize float64 `json:"font_size,omitempty"`
}

// IsText reports whether the element carries text.
func (e Element) IsText() bool {
	return e.Kind == KindHeading || e.Kind == KindText || e.Kind == KindCaption
}

// Change records one positional adjustment made by a layout operation.
type Change struct {
	ElementID string  `json:"element_id"`
	Field     string  `json:"field"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
}

func cloneElements(elements []Element) []Element {
	out := make([]Element, len(elements))
	copy(out, elements)
	return out
}
