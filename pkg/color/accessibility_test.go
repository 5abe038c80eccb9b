package color

import "testing"

func TestEnsureContrast(t *testing.T) {
	p := Palette{
		Primary: HSL{H: 50, S: 0.9, L: 0.8}, // light yellow, fails against white
		Semantic: map[string]HSL{
			"success": {H: 120, S: 0.6, L: 0.7},
			"error":   {H: 0, S: 0.8, L: 0.35},
		},
	}

	fixed := EnsureContrast(p, RatioAA)
	white := RGB{R: 255, G: 255, B: 255}

	if r := ContrastRatio(fixed.Primary.RGB(), white); r < RatioAA {
		t.Errorf("primary ratio = %.2f, want >= %.1f", r, RatioAA)
	}
	for name, c := range fixed.Semantic {
		if r := ContrastRatio(c.RGB(), white); r < RatioAA {
			t.Errorf("%s ratio = %.2f, want >= %.1f", name, r, RatioAA)
		}
	}
}

func TestSimulate(t *testing.T) {
	c := RGB{R: 200, G: 100, B: 50}

	cases := []struct {
		deficiency VisionDeficiency
		want       RGB
	}{
		{Protanopia, RGB{R: 0, G: 100, B: 50}},
		{Deuteranopia, RGB{R: 200, G: 0, B: 50}},
		{Tritanopia, RGB{R: 200, G: 100, B: 0}},
	}

	for _, tc := range cases {
		t.Run(string(tc.deficiency), func(t *testing.T) {
			if got := Simulate(c, tc.deficiency); got != tc.want {
				t.Errorf("Simulate = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCheckDistinguishable(t *testing.T) {
	t.Run("red green conflict under protanopia", func(t *testing.T) {
		colors := map[string]HSL{
			"danger": {H: 0, S: 1, L: 0.5},   // pure red
			"go":     {H: 120, S: 1, L: 0.5}, // pure green
		}

		conflicts := CheckDistinguishable(colors)
		if len(conflicts) == 0 {
			t.Fatal("expected red/green to conflict under simulation")
		}
		for _, c := range conflicts {
			if c.Delta >= similarityThreshold {
				t.Errorf("conflict delta = %.2f, want < %.0f", c.Delta, similarityThreshold)
			}
		}
	})

	t.Run("distinct lightness stays distinguishable", func(t *testing.T) {
		colors := map[string]HSL{
			"dark":  {H: 220, S: 0.5, L: 0.15},
			"light": {H: 220, S: 0.5, L: 0.85},
		}
		if conflicts := CheckDistinguishable(colors); len(conflicts) != 0 {
			t.Errorf("unexpected conflicts: %+v", conflicts)
		}
	})
}

func TestDeltaE(t *testing.T) {
	a := RGB{R: 10, G: 10, B: 10}
	if DeltaE(a, a) != 0 {
		t.Error("DeltaE of identical colors should be 0")
	}

	white := RGB{R: 255, G: 255, B: 255}
	if d := DeltaE(a, white); d < 50 {
		t.Errorf("DeltaE(near-black, white) = %.2f, want large", d)
	}
}
