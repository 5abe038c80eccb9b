package layout

import (
	"math"
	"testing"
)

func TestCorrectAlignment(t *testing.T) {
	t.Run("snaps near left edges to mode", func(t *testing.T) {
		elements := []Element{
			{ID: "a", Bounds: Bounds{X: 100, Y: 0, Width: 50, Height: 20}},
			{ID: "b", Bounds: Bounds{X: 100, Y: 40, Width: 50, Height: 20}},
			{ID: "c", Bounds: Bounds{X: 105, Y: 80, Width: 50, Height: 20}},
		}

		result := CorrectAlignment(elements, AlignmentOptions{Threshold: 8})

		// Two elements sit exactly at 100, so the mode is 100.
		for _, el := range result.Elements {
			if el.Bounds.X != 100 {
				t.Errorf("element %s X = %.1f, want 100", el.ID, el.Bounds.X)
			}
		}

		var found bool
		for _, g := range result.Guides {
			if g.Orientation == GuideVertical && len(g.Members) == 3 {
				found = true
				if g.Position != 100 {
					t.Errorf("guide position = %.1f, want 100", g.Position)
				}
			}
		}
		if !found {
			t.Error("expected a vertical guide with 3 members")
		}
	})

	t.Run("singleton clusters produce no guide", func(t *testing.T) {
		elements := []Element{
			{ID: "a", Bounds: Bounds{X: 0, Y: 0, Width: 10, Height: 10}},
			{ID: "b", Bounds: Bounds{X: 500, Y: 300, Width: 10, Height: 10}},
		}
		result := CorrectAlignment(elements, AlignmentOptions{Threshold: 8})
		for _, g := range result.Guides {
			if len(g.Members) < 2 {
				t.Errorf("guide with %d members emitted", len(g.Members))
			}
		}
	})

	t.Run("horizontal guides snap top edges", func(t *testing.T) {
		elements := []Element{
			{ID: "a", Bounds: Bounds{X: 0, Y: 200, Width: 50, Height: 20}},
			{ID: "b", Bounds: Bounds{X: 300, Y: 206, Width: 50, Height: 20}},
		}

		result := CorrectAlignment(elements, AlignmentOptions{Threshold: 8})
		if result.Elements[0].Bounds.Y != result.Elements[1].Bounds.Y {
			t.Errorf("top edges differ: %.1f vs %.1f",
				result.Elements[0].Bounds.Y, result.Elements[1].Bounds.Y)
		}
	})

	t.Run("optical nudges tall text upward", func(t *testing.T) {
		elements := []Element{
			{ID: "tall", Kind: KindText, Bounds: Bounds{X: 0, Y: 100, Width: 200, Height: 100}},
			{ID: "short", Kind: KindText, Bounds: Bounds{X: 300, Y: 100, Width: 200, Height: 20}},
		}

		result := CorrectAlignment(elements, AlignmentOptions{Threshold: 8, Optical: true})

		wantY := 98.0 // 100 - 2% of 100
		var tallY, shortY float64
		for _, el := range result.Elements {
			switch el.ID {
			case "tall":
				tallY = el.Bounds.Y
			case "short":
				shortY = el.Bounds.Y
			}
		}
		if math.Abs(tallY-wantY) > 0.001 {
			t.Errorf("tall Y = %.2f, want %.2f", tallY, wantY)
		}
		if shortY != 100 {
			t.Errorf("short Y = %.2f, want 100 (no nudge)", shortY)
		}
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		elements := []Element{
			{ID: "a", Bounds: Bounds{X: 100}},
			{ID: "b", Bounds: Bounds{X: 104}},
		}
		CorrectAlignment(elements, AlignmentOptions{Threshold: 8})
		if elements[1].Bounds.X != 104 {
			t.Error("input slice was mutated")
		}
	})
}

func TestClusterMode(t *testing.T) {
	t.Run("largest run wins", func(t *testing.T) {
		got := clusterMode([]float64{10, 10, 10, 18, 18}, 2)
		if got != 10 {
			t.Errorf("mode = %.1f, want 10", got)
		}
	})

	t.Run("averages near-equal run", func(t *testing.T) {
		got := clusterMode([]float64{10, 11, 30}, 2)
		if math.Abs(got-10.5) > 0.001 {
			t.Errorf("mode = %.2f, want 10.5", got)
		}
	})
}
