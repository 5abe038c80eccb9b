package composition

import "math"

// ArrangeLayout selects the multi-object arrangement algorithm.
type ArrangeLayout string

// Arrangement layouts.
const (
	// LayoutMasonry stacks objects into the currently shortest column.
	LayoutMasonry ArrangeLayout = "masonry"
	// LayoutGrid places objects into fixed uniform cells.
	LayoutGrid ArrangeLayout = "grid"
	// LayoutFlow wraps objects into rows with an alignment policy.
	LayoutFlow ArrangeLayout = "flow"
	// LayoutRadial spaces objects evenly around a circle.
	LayoutRadial ArrangeLayout = "radial"
)

// FlowAlign positions flow rows inside the canvas width.
type FlowAlign string

// Flow alignments.
const (
	AlignLeft    FlowAlign = "left"
	AlignCenter  FlowAlign = "center"
	AlignRight   FlowAlign = "right"
	AlignJustify FlowAlign = "justify"
)

// ArrangeOptions controls Arrange.
type ArrangeOptions struct {
	Layout ArrangeLayout
	// Columns for masonry and grid layouts. Zero means 3.
	Columns int
	// Gap between objects in pixels. Zero means 16.
	Gap float64
	// Align for flow layout. Empty means left.
	Align FlowAlign
	// Radius for radial layout. Zero derives from the canvas.
	Radius float64
}

// Arrange positions the given objects on the canvas and returns one
// placement per object, in input order.
func Arrange(objects []Size, canvas Canvas, opts ArrangeOptions) []Placement {
	if len(objects) == 0 {
		return nil
	}

	gap := opts.Gap
	if gap <= 0 {
		gap = 16
	}
	cols := opts.Columns
	if cols < 1 {
		cols = 3
	}

	switch opts.Layout {
	case LayoutGrid:
		return arrangeGrid(objects, canvas, cols, gap)
	case LayoutFlow:
		return arrangeFlow(objects, canvas, gap, opts.Align)
	case LayoutRadial:
		return arrangeRadial(objects, canvas, opts.Radius)
	default:
		return arrangeMasonry(objects, canvas, cols, gap)
	}
}

// arrangeMasonry drops each object into the shortest column, scaling
// none: objects keep their size, x centers inside the column.
func arrangeMasonry(objects []Size, canvas Canvas, cols int, gap float64) []Placement {
	colWidth := (canvas.Width - float64(cols+1)*gap) / float64(cols)
	heights := make([]float64, cols)

	out := make([]Placement, len(objects))
	for i, obj := range objects {
		shortest := 0
		for c := 1; c < cols; c++ {
			if heights[c] < heights[shortest] {
				shortest = c
			}
		}

		x := gap + float64(shortest)*(colWidth+gap) + math.Max(0, (colWidth-obj.Width)/2)
		y := heights[shortest] + gap

		out[i] = Placement{X: x, Y: y}
		heights[shortest] = y + obj.Height
	}

	return out
}

func arrangeGrid(objects []Size, canvas Canvas, cols int, gap float64) []Placement {
	cellW := (canvas.Width - float64(cols+1)*gap) / float64(cols)

	var cellH float64
	for _, obj := range objects {
		cellH = math.Max(cellH, obj.Height)
	}

	out := make([]Placement, len(objects))
	for i, obj := range objects {
		row := i / cols
		col := i % cols
		out[i] = Placement{
			X: gap + float64(col)*(cellW+gap) + math.Max(0, (cellW-obj.Width)/2),
			Y: gap + float64(row)*(cellH+gap) + math.Max(0, (cellH-obj.Height)/2),
		}
	}

	return out
}

func arrangeFlow(objects []Size, canvas Canvas, gap float64, align FlowAlign) []Placement {
	out := make([]Placement, len(objects))

	type rowItem struct {
		index int
		size  Size
	}

	var row []rowItem
	var rowWidth, y float64

	flushRow := func() {
		if len(row) == 0 {
			return
		}

		contentWidth := rowWidth - gap // trailing gap
		free := canvas.Width - 2*gap - contentWidth

		var x, spread float64
		switch align {
		case AlignCenter:
			x = gap + math.Max(0, free/2)
		case AlignRight:
			x = gap + math.Max(0, free)
		case AlignJustify:
			x = gap
			if len(row) > 1 {
				spread = math.Max(0, free) / float64(len(row)-1)
			}
		default:
			x = gap
		}

		var rowHeight float64
		for _, item := range row {
			rowHeight = math.Max(rowHeight, item.size.Height)
		}

		for _, item := range row {
			out[item.index] = Placement{X: x, Y: y + gap}
			x += item.size.Width + gap + spread
		}

		y += rowHeight + gap
		row = row[:0]
		rowWidth = 0
	}

	for i, obj := range objects {
		if len(row) > 0 && rowWidth+obj.Width+gap > canvas.Width-2*gap {
			flushRow()
		}
		row = append(row, rowItem{index: i, size: obj})
		rowWidth += obj.Width + gap
	}
	flushRow()

	return out
}

func arrangeRadial(objects []Size, canvas Canvas, radius float64) []Placement {
	if radius <= 0 {
		radius = math.Min(canvas.Width, canvas.Height) * 0.35
	}

	cx := canvas.Width / 2
	cy := canvas.Height / 2
	step := 2 * math.Pi / float64(len(objects))

	out := make([]Placement, len(objects))
	for i, obj := range objects {
		angle := -math.Pi/2 + float64(i)*step // start at 12 o'clock
		out[i] = Placement{
			X: cx + radius*math.Cos(angle) - obj.Width/2,
			Y: cy + radius*math.Sin(angle) - obj.Height/2,
		}
	}

	return out
}
