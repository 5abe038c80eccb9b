package composition

import "testing"

func TestScoreBalance(t *testing.T) {
	canvas := Canvas{Width: 1000, Height: 1000}

	t.Run("symmetric layout scores high", func(t *testing.T) {
		layers := []Layer{
			{Type: LayerGraphic, X: 100, Y: 450, Width: 100, Height: 100, Opacity: 1, Scale: 1, VisualWeight: 100},
			{Type: LayerGraphic, X: 800, Y: 450, Width: 100, Height: 100, Opacity: 1, Scale: 1, VisualWeight: 100},
		}

		scores := ScoreBalance(layers, canvas)
		if scores.Horizontal < 0.99 {
			t.Errorf("horizontal = %.2f, want ~1 for mirrored weights", scores.Horizontal)
		}
		if scores.Vertical < 0.99 {
			t.Errorf("vertical = %.2f, want ~1", scores.Vertical)
		}
	})

	t.Run("one-sided layout scores low horizontally", func(t *testing.T) {
		layers := []Layer{
			{Type: LayerGraphic, X: 100, Y: 450, Width: 100, Height: 100, Opacity: 1, Scale: 1, VisualWeight: 100},
		}

		scores := ScoreBalance(layers, canvas)
		// Centroid at x=150: deviation 350/500 = 0.7.
		if scores.Horizontal > 0.35 {
			t.Errorf("horizontal = %.2f, want ~0.3", scores.Horizontal)
		}
		if scores.Vertical < 0.99 {
			t.Errorf("vertical = %.2f, want ~1", scores.Vertical)
		}
		if scores.Overall <= scores.Horizontal {
			t.Error("overall should average in the better axes")
		}
	})

	t.Run("empty canvas is trivially balanced", func(t *testing.T) {
		scores := ScoreBalance(nil, canvas)
		if scores.Overall != 1 {
			t.Errorf("overall = %.2f, want 1", scores.Overall)
		}
	})

	t.Run("degenerate canvas scores zero", func(t *testing.T) {
		if got := ScoreBalance(nil, Canvas{}); got.Overall != 0 {
			t.Errorf("overall = %.2f, want 0", got.Overall)
		}
	})
}

func TestCenterOfMass(t *testing.T) {
	canvas := Canvas{Width: 1000, Height: 1000}

	t.Run("heavier layer pulls the centroid", func(t *testing.T) {
		layers := []Layer{
			{Type: LayerGraphic, X: 0, Y: 450, Width: 100, Height: 100, Opacity: 1, Scale: 1, VisualWeight: 300},
			{Type: LayerGraphic, X: 900, Y: 450, Width: 100, Height: 100, Opacity: 1, Scale: 1, VisualWeight: 100},
		}

		com := centerOfMass(layers, canvas)
		if com.X >= 500 {
			t.Errorf("centroid x = %.1f, want left of center", com.X)
		}
	})

	t.Run("empty set reports the canvas center", func(t *testing.T) {
		com := centerOfMass(nil, canvas)
		if com.X != 500 || com.Y != 500 {
			t.Errorf("centroid = (%.1f, %.1f), want (500, 500)", com.X, com.Y)
		}
	})
}

func TestOptimizeBalance(t *testing.T) {
	canvas := Canvas{Width: 1000, Height: 1000}

	t.Run("proposes improvements without mutating", func(t *testing.T) {
		m := NewManager()
		m.Add(Layer{
			ID: "off", Type: LayerGraphic,
			X: 100, Y: 450, Width: 100, Height: 100,
			Importance: 0.3, VisualWeight: 100,
		})

		proposals := m.OptimizeBalance(canvas, OptimizeOptions{})
		if len(proposals) == 0 {
			t.Fatal("expected proposals for an off-center layer")
		}

		for i, p := range proposals {
			if p.Improvement <= 0.01 {
				t.Errorf("proposal %d improvement = %.3f, want > 0.01", i, p.Improvement)
			}
			if i > 0 && p.Improvement > proposals[i-1].Improvement {
				t.Error("proposals not sorted by improvement")
			}
		}

		// Best move pushes x toward center.
		if proposals[0].Field != "x" || proposals[0].To <= proposals[0].From {
			t.Errorf("best proposal = %+v, want x moved right", proposals[0])
		}

		l, _ := m.Get("off")
		if l.X != 100 {
			t.Errorf("layer x = %.1f after optimize, manager must not mutate", l.X)
		}
	})

	t.Run("skips critical layers", func(t *testing.T) {
		m := NewManager()
		m.Add(Layer{
			ID: "pinned", Type: LayerText,
			X: 50, Y: 50, Width: 100, Height: 100,
			Importance: 0.9, VisualWeight: 100,
		})

		if proposals := m.OptimizeBalance(canvas, OptimizeOptions{}); len(proposals) != 0 {
			t.Errorf("got %d proposals for a critical-only layout, want 0", len(proposals))
		}
	})

	t.Run("respects the proposal cap", func(t *testing.T) {
		m := NewManager()
		m.Add(Layer{ID: "a", Type: LayerGraphic, X: 50, Y: 100, Width: 100, Height: 100, VisualWeight: 100})
		m.Add(Layer{ID: "b", Type: LayerGraphic, X: 100, Y: 700, Width: 100, Height: 100, VisualWeight: 100})

		proposals := m.OptimizeBalance(canvas, OptimizeOptions{MaxAdjustments: 2})
		if len(proposals) > 2 {
			t.Errorf("got %d proposals, want at most 2", len(proposals))
		}
	})

	t.Run("balanced layout yields nothing", func(t *testing.T) {
		m := NewManager()
		m.Add(Layer{
			ID: "centered", Type: LayerGraphic,
			X: 450, Y: 450, Width: 100, Height: 100,
			VisualWeight: 100,
		})

		if proposals := m.OptimizeBalance(canvas, OptimizeOptions{MinImprovement: 0.05}); len(proposals) != 0 {
			t.Errorf("got %d proposals for a centered layer, want 0", len(proposals))
		}
	})
}
