package composition

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestArrangeMasonry(t *testing.T) {
	canvas := Canvas{Width: 1000, Height: 1000}
	objects := []Size{
		{Width: 100, Height: 100},
		{Width: 100, Height: 200},
		{Width: 100, Height: 100},
	}

	got := Arrange(objects, canvas, ArrangeOptions{Layout: LayoutMasonry, Columns: 2, Gap: 10})
	if len(got) != 3 {
		t.Fatalf("got %d placements, want 3", len(got))
	}

	// Column width (1000 - 3*10)/2 = 485; objects center inside.
	if !near(got[0].X, 202.5) || !near(got[0].Y, 10) {
		t.Errorf("first placement = (%.1f, %.1f), want (202.5, 10)", got[0].X, got[0].Y)
	}
	if !near(got[1].X, 697.5) || !near(got[1].Y, 10) {
		t.Errorf("second placement = (%.1f, %.1f), want (697.5, 10)", got[1].X, got[1].Y)
	}
	// Third object lands in the shorter first column below the first.
	if !near(got[2].X, 202.5) || !near(got[2].Y, 120) {
		t.Errorf("third placement = (%.1f, %.1f), want (202.5, 120)", got[2].X, got[2].Y)
	}
}

func TestArrangeGrid(t *testing.T) {
	canvas := Canvas{Width: 1000, Height: 1000}
	objects := []Size{
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
	}

	got := Arrange(objects, canvas, ArrangeOptions{Layout: LayoutGrid, Columns: 2, Gap: 10})

	if !near(got[0].Y, got[1].Y) {
		t.Error("first row not level")
	}
	if !near(got[0].X, got[2].X) {
		t.Error("first column not aligned")
	}
	if got[2].Y <= got[0].Y {
		t.Error("second row not below the first")
	}
	if !near(got[3].X, 697.5) || !near(got[3].Y, 120) {
		t.Errorf("last cell = (%.1f, %.1f), want (697.5, 120)", got[3].X, got[3].Y)
	}
}

func TestArrangeFlow(t *testing.T) {
	canvas := Canvas{Width: 300, Height: 600}
	objects := []Size{
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
	}

	t.Run("wraps when the row is full", func(t *testing.T) {
		got := Arrange(objects, canvas, ArrangeOptions{Layout: LayoutFlow, Gap: 10})

		if !near(got[0].X, 10) || !near(got[0].Y, 10) {
			t.Errorf("first = (%.1f, %.1f), want (10, 10)", got[0].X, got[0].Y)
		}
		if !near(got[1].X, 120) || !near(got[1].Y, 10) {
			t.Errorf("second = (%.1f, %.1f), want (120, 10)", got[1].X, got[1].Y)
		}
		if !near(got[2].X, 10) || !near(got[2].Y, 120) {
			t.Errorf("third = (%.1f, %.1f), want wrapped to (10, 120)", got[2].X, got[2].Y)
		}
	})

	t.Run("center alignment shares free space", func(t *testing.T) {
		got := Arrange(objects[:1], canvas, ArrangeOptions{Layout: LayoutFlow, Gap: 10, Align: AlignCenter})
		// Free space (280 - 100)/2 = 90, so x = 10 + 90.
		if !near(got[0].X, 100) {
			t.Errorf("centered x = %.1f, want 100", got[0].X)
		}
	})

	t.Run("justify spreads the row", func(t *testing.T) {
		got := Arrange(objects[:2], canvas, ArrangeOptions{Layout: LayoutFlow, Gap: 10, Align: AlignJustify})
		if !near(got[0].X, 10) {
			t.Errorf("first justified x = %.1f, want 10", got[0].X)
		}
		// Second item pushed flush right: 300 - 10 - 100.
		if !near(got[1].X, 190) {
			t.Errorf("second justified x = %.1f, want 190", got[1].X)
		}
	})
}

func TestArrangeRadial(t *testing.T) {
	canvas := Canvas{Width: 400, Height: 400}
	objects := []Size{
		{Width: 20, Height: 20},
		{Width: 20, Height: 20},
		{Width: 20, Height: 20},
		{Width: 20, Height: 20},
	}

	got := Arrange(objects, canvas, ArrangeOptions{Layout: LayoutRadial, Radius: 100})

	// First object sits at 12 o'clock.
	if !near(got[0].X, 190) || !near(got[0].Y, 90) {
		t.Errorf("first = (%.1f, %.1f), want (190, 90)", got[0].X, got[0].Y)
	}
	// Second a quarter turn clockwise, at 3 o'clock.
	if !near(got[1].X, 290) || !near(got[1].Y, 190) {
		t.Errorf("second = (%.1f, %.1f), want (290, 190)", got[1].X, got[1].Y)
	}

	// All object centers equidistant from canvas center.
	for i, p := range got {
		d := math.Hypot(p.X+10-200, p.Y+10-200)
		if !near(d, 100) {
			t.Errorf("object %d distance = %.1f, want 100", i, d)
		}
	}
}

func TestArrangeDefaults(t *testing.T) {
	if got := Arrange(nil, Canvas{Width: 100, Height: 100}, ArrangeOptions{}); got != nil {
		t.Errorf("empty input = %v, want nil", got)
	}

	// Unknown layout falls back to masonry with defaults.
	got := Arrange([]Size{{Width: 50, Height: 50}}, Canvas{Width: 500, Height: 500}, ArrangeOptions{Layout: "bogus"})
	if len(got) != 1 {
		t.Fatalf("got %d placements, want 1", len(got))
	}
	if got[0].X < 0 || got[0].Y < 0 {
		t.Errorf("placement = (%.1f, %.1f) out of canvas", got[0].X, got[0].Y)
	}
}
