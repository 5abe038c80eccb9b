package color

import (
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	t.Run("full form", func(t *testing.T) {
		c, err := ParseHex("#3366cc")
		if err != nil {
			t.Fatalf("ParseHex error: %v", err)
		}
		if c.R != 0x33 || c.G != 0x66 || c.B != 0xcc {
			t.Errorf("ParseHex = %+v, want {51 102 204}", c)
		}
	})

	t.Run("short form", func(t *testing.T) {
		c, err := ParseHex("#fa0")
		if err != nil {
			t.Fatalf("ParseHex error: %v", err)
		}
		if c.R != 0xff || c.G != 0xaa || c.B != 0x00 {
			t.Errorf("ParseHex = %+v, want {255 170 0}", c)
		}
	})

	t.Run("missing hash", func(t *testing.T) {
		if _, err := ParseHex("3366cc"); err != nil {
			t.Errorf("ParseHex without # error: %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := ParseHex("#12345"); err == nil {
			t.Error("expected error for 5-digit hex")
		}
	})
}

func TestHSLRoundTrip(t *testing.T) {
	cases := []string{"#000000", "#ffffff", "#ff0000", "#00ff00", "#0000ff", "#3366cc", "#c0ffee"}
	for _, hex := range cases {
		c, err := ParseHex(hex)
		if err != nil {
			t.Fatalf("ParseHex(%s) error: %v", hex, err)
		}
		got := c.HSL().RGB()
		if got != c {
			t.Errorf("round trip %s = %s", hex, got.Hex())
		}
	}
}

func TestTriadic(t *testing.T) {
	base := HSL{H: 45, S: 0.6, L: 0.5}
	colors := Triadic(base)

	if len(colors) != 3 {
		t.Fatalf("Triadic len = %d, want 3", len(colors))
	}

	for i := range colors {
		for j := i + 1; j < len(colors); j++ {
			d := hueDistance(colors[i].H, colors[j].H)
			if math.Abs(d-120) > 1 {
				t.Errorf("hue distance [%d][%d] = %.2f, want ~120", i, j, d)
			}
		}
		if colors[i].S != base.S || colors[i].L != base.L {
			t.Errorf("color %d S/L = %.2f/%.2f, want %.2f/%.2f", i, colors[i].S, colors[i].L, base.S, base.L)
		}
	}
}

func TestComplementary(t *testing.T) {
	t.Run("without variants", func(t *testing.T) {
		colors := Complementary(HSL{H: 10, S: 0.5, L: 0.4}, ComplementaryOptions{})
		if len(colors) != 2 {
			t.Fatalf("len = %d, want 2", len(colors))
		}
		if d := hueDistance(colors[0].H, colors[1].H); math.Abs(d-180) > 1 {
			t.Errorf("complement distance = %.2f, want 180", d)
		}
	})

	t.Run("with variants", func(t *testing.T) {
		colors := Complementary(HSL{H: 10, S: 0.5, L: 0.4}, ComplementaryOptions{IncludeVariants: true})
		if len(colors) != 4 {
			t.Fatalf("len = %d, want 4", len(colors))
		}
		if colors[2].L <= colors[1].L {
			t.Errorf("lighter variant L = %.2f, base comp L = %.2f", colors[2].L, colors[1].L)
		}
		if colors[3].L >= colors[1].L {
			t.Errorf("darker variant L = %.2f, base comp L = %.2f", colors[3].L, colors[1].L)
		}
	})
}

func TestSplitComplementary(t *testing.T) {
	base := HSL{H: 0, S: 0.5, L: 0.5}
	colors := SplitComplementary(base)

	if len(colors) != 3 {
		t.Fatalf("len = %d, want 3", len(colors))
	}
	if colors[1].H != 150 || colors[2].H != 210 {
		t.Errorf("hues = %.0f/%.0f, want 150/210", colors[1].H, colors[2].H)
	}
	want := base.S * 0.8
	if math.Abs(colors[1].S-want) > 0.001 {
		t.Errorf("saturation = %.3f, want %.3f", colors[1].S, want)
	}
}

func TestAnalogous(t *testing.T) {
	colors := Analogous(HSL{H: 300, S: 0.7, L: 0.5}, 4)
	if len(colors) != 4 {
		t.Fatalf("len = %d, want 4", len(colors))
	}
	for i := 1; i < len(colors); i++ {
		if d := hueDistance(colors[i-1].H, colors[i].H); math.Abs(d-30) > 1 {
			t.Errorf("step %d distance = %.2f, want 30", i, d)
		}
	}
}

func TestTetradic(t *testing.T) {
	colors := Tetradic(HSL{H: 0, S: 0.5, L: 0.5})
	want := []float64{0, 90, 180, 270}
	for i, c := range colors {
		if c.H != want[i] {
			t.Errorf("hue %d = %.0f, want %.0f", i, c.H, want[i])
		}
	}
}

func TestDetectHarmony(t *testing.T) {
	cases := []struct {
		name   string
		colors []HSL
		want   Harmony
	}{
		{"monochromatic", []HSL{{H: 100}, {H: 105}, {H: 110}}, HarmonyMonochromatic},
		{"analogous", []HSL{{H: 0}, {H: 30}, {H: 60}}, HarmonyAnalogous},
		{"complementary", []HSL{{H: 0}, {H: 180}}, HarmonyComplementary},
		{"triadic", []HSL{{H: 0}, {H: 120}, {H: 240}}, HarmonyTriadic},
		{"single color", []HSL{{H: 42}}, HarmonyMonochromatic},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectHarmony(tc.colors); got != tc.want {
				t.Errorf("DetectHarmony = %s, want %s", got, tc.want)
			}
		})
	}
}
