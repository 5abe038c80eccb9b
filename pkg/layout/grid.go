package layout

import (
	"fmt"
	"math"
)

// GridSpec describes a column grid over a container.
type GridSpec struct {
	ContainerWidth float64 `json:"container_width"`
	Columns        int     `json:"columns"`
	Gutter         float64 `json:"gutter"`
	Margin         float64 `json:"margin"`
}

// ColumnWidth returns the width of a single column. Column counts below
// one are treated as one.
func (g GridSpec) ColumnWidth() float64 {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	usable := g.ContainerWidth - 2*g.Margin - float64(cols-1)*g.Gutter
	if usable < 0 {
		usable = 0
	}
	return usable / float64(cols)
}

// GridResult carries the grid geometry and, when snapping was requested,
// the adjusted elements and a change log entry per moved element.
type GridResult struct {
	ColumnWidth float64   `json:"column_width"`
	Elements    []Element `json:"elements"`
	Changes     []Change  `json:"changes"`
}

// ApplyGrid computes the grid geometry and, when snap is true, aligns
// every element's x-position to the nearest column start and its width
// to the nearest whole-column span.
func ApplyGrid(elements []Element, spec GridSpec, snap bool) GridResult {
	result := GridResult{
		ColumnWidth: spec.ColumnWidth(),
		Elements:    cloneElements(elements),
	}

	if !snap || spec.Columns < 1 || result.ColumnWidth <= 0 {
		return result
	}

	colw := result.ColumnWidth
	unit := colw + spec.Gutter

	for i := range result.Elements {
		el := &result.Elements[i]

		col := int(math.Round((el.Bounds.X - spec.Margin) / unit))
		col = clampInt(col, 0, spec.Columns-1)

		span := int(math.Round((el.Bounds.Width + spec.Gutter) / unit))
		span = clampInt(span, 1, spec.Columns-col)

		newX := spec.Margin + float64(col)*unit
		newW := float64(span)*colw + float64(span-1)*spec.Gutter

		if newX != el.Bounds.X {
			result.Changes = append(result.Changes, Change{
				ElementID: el.ID,
				Field:     "x",
				From:      el.Bounds.X,
				To:        newX,
			})
			el.Bounds.X = newX
		}
		if newW != el.Bounds.Width {
			result.Changes = append(result.Changes, Change{
				ElementID: el.ID,
				Field:     "width",
				From:      el.Bounds.Width,
				To:        newW,
			})
			el.Bounds.Width = newW
		}
	}

	return result
}

// Validate checks a grid spec for usable geometry.
func (g GridSpec) Validate() error {
	if g.ContainerWidth <= 0 {
		return fmt.Errorf("container width must be positive")
	}
	if g.Columns < 1 {
		return fmt.Errorf("columns must be at least 1")
	}
	if g.ColumnWidth() <= 0 {
		return fmt.Errorf("margin and gutter leave no room for columns")
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
