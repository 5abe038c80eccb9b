package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	imgcolor "image/color"
	"image/png"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/burnishapp/burnish/internal/pipeline"
	"github.com/burnishapp/burnish/pkg/composition"
	"github.com/burnishapp/burnish/pkg/layout"
	"github.com/burnishapp/burnish/pkg/storage"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func encodeSolidPNG(t *testing.T, w, h int, c imgcolor.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func seedAsset(t *testing.T, store storage.System, kind pipeline.AssetKind, key string, w, h int) pipeline.GeneratedAsset {
	t.Helper()
	url, err := store.UploadBytes(context.Background(), key, encodeSolidPNG(t, w, h, imgcolor.RGBA{R: 200, G: 180, B: 160, A: 255}), "image/png")
	if err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return pipeline.GeneratedAsset{
		ID:       uuid.New(),
		Kind:     kind,
		URL:      url,
		Width:    w,
		Height:   h,
		Metadata: map[string]string{"key": key},
	}
}

func composeRun(key string) pipeline.Context {
	return pipeline.Context{
		DocumentID: uuid.New(),
		OwnerID:    uuid.New(),
		Tier:       pipeline.TierPro,
		SourceKey:  key,
		FileKind:   "image",
	}
}

func composePlan() *pipeline.Plan {
	return &pipeline.Plan{
		Strategy: pipeline.Strategy{
			Approach:        pipeline.ApproachModerate,
			Priority:        []pipeline.Dimension{pipeline.DimensionColor, pipeline.DimensionLayout, pipeline.DimensionTypography, pipeline.DimensionVisuals},
			EstimatedImpact: 40,
		},
		Colors: pipeline.ColorSpec{
			Primary:    "#336699",
			Harmony:    "complementary",
			TargetAA:   true,
			Background: "#ffffff",
		},
		Typography: pipeline.TypographySpec{HeadingFont: "Montserrat", BodyFont: "Georgia"},
		Layout: pipeline.LayoutSpec{
			Grid:    layout.GridSpec{ContainerWidth: 1200, Columns: 12, Gutter: 16, Margin: 32},
			Flow:    layout.FlowLinear,
			Spacing: layout.SpacingEqual,
		},
	}
}

func composeAnalysis() *pipeline.AnalysisResult {
	return &pipeline.AnalysisResult{
		Layout: pipeline.LayoutAnalysis{
			Structure: "single",
			Sections: []pipeline.Section{
				{Name: "header", Bounds: pipeline.SectionBounds{X: 13, Y: 10, Width: 370, Height: 60}},
				{Name: "body", Bounds: pipeline.SectionBounds{X: 17, Y: 90, Width: 366, Height: 180}},
			},
		},
		Score: pipeline.Score{Overall: 60, Color: 50, Typography: 70, Layout: 55, Composition: 65},
	}
}

func TestCompose(t *testing.T) {
	store := storage.NewMemory()
	if _, err := store.UploadBytes(context.Background(), "docs/source.png", encodeSolidPNG(t, 400, 300, imgcolor.RGBA{R: 230, G: 230, B: 230, A: 255}), "image/png"); err != nil {
		t.Fatalf("seed source: %v", err)
	}

	assets := &pipeline.Assets{
		Backgrounds: []pipeline.GeneratedAsset{seedAsset(t, store, pipeline.AssetBackground, "assets/bg.png", 400, 300)},
		Decorations: []pipeline.GeneratedAsset{seedAsset(t, store, pipeline.AssetDecoration, "assets/deco.png", 64, 64)},
	}

	c := NewComposer(store, discard())
	result, err := c.Compose(context.Background(), composeRun("docs/source.png"), composeAnalysis(), composePlan(), assets)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if result.EnhancedURL == "" || result.ThumbnailURL == "" {
		t.Fatalf("missing artifact URLs: %+v", result)
	}

	enhanced, err := store.DownloadBytes(context.Background(), strings.TrimPrefix(result.EnhancedURL, "memory://"))
	if err != nil {
		t.Fatalf("download enhanced: %v", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(enhanced))
	if err != nil {
		t.Fatalf("enhanced render not a valid image: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("enhanced dimensions = %dx%d, want source 400x300", cfg.Width, cfg.Height)
	}

	thumb, err := store.DownloadBytes(context.Background(), strings.TrimPrefix(result.ThumbnailURL, "memory://"))
	if err != nil {
		t.Fatalf("download thumbnail: %v", err)
	}
	tcfg, _, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail not a valid image: %v", err)
	}
	if tcfg.Width != thumbnailWidth {
		t.Errorf("thumbnail width = %d, want %d", tcfg.Width, thumbnailWidth)
	}

	if result.Improvements.Overall.After <= result.Improvements.Overall.Before {
		t.Errorf("overall did not improve: %+v", result.Improvements.Overall)
	}

	for _, want := range []string{"background-asset", "decorations:1", "contrast-aa"} {
		if !slices.Contains(result.Applied, want) {
			t.Errorf("applied labels missing %q: %v", want, result.Applied)
		}
	}
	if !slices.ContainsFunc(result.Applied, func(s string) bool { return strings.HasPrefix(s, "palette:") }) {
		t.Errorf("applied labels missing palette entry: %v", result.Applied)
	}
}

func TestComposeWithoutAssets(t *testing.T) {
	store := storage.NewMemory()
	if _, err := store.UploadBytes(context.Background(), "docs/plain.png", encodeSolidPNG(t, 200, 200, imgcolor.RGBA{R: 250, G: 250, B: 250, A: 255}), "image/png"); err != nil {
		t.Fatalf("seed source: %v", err)
	}

	c := NewComposer(store, discard())
	result, err := c.Compose(context.Background(), composeRun("docs/plain.png"), composeAnalysis(), composePlan(), &pipeline.Assets{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if slices.Contains(result.Applied, "background-asset") {
		t.Errorf("background label without a background asset: %v", result.Applied)
	}
	if result.EnhancedURL == "" {
		t.Error("no enhanced artifact produced")
	}
}

func TestComposeMissingSource(t *testing.T) {
	c := NewComposer(storage.NewMemory(), discard())
	_, err := c.Compose(context.Background(), composeRun("docs/absent.png"), composeAnalysis(), composePlan(), &pipeline.Assets{})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestImprovements(t *testing.T) {
	before := pipeline.Score{Overall: 60, Color: 50, Typography: 70, Layout: 55, Composition: 65}
	plan := composePlan()

	got := improvements(before, plan, 0.5)

	// Impact 40 distributed by rank: color 32, layout 25, typography 19,
	// visuals 12.
	if got.Color.After != 82 {
		t.Errorf("color after = %d, want 82", got.Color.After)
	}
	if got.Layout.After != 80 {
		t.Errorf("layout after = %d, want 80", got.Layout.After)
	}
	if got.Typography.After != 89 {
		t.Errorf("typography after = %d, want 89", got.Typography.After)
	}
	if got.Composition.After != 77 {
		t.Errorf("composition after = %d, want 77", got.Composition.After)
	}
	if got.Overall.After != 82 {
		t.Errorf("overall after = %d, want 82", got.Overall.After)
	}
	if got.Overall.Before != 60 {
		t.Errorf("overall before = %d, want 60", got.Overall.Before)
	}
}

func TestImprovementsCreditsMeasuredBalance(t *testing.T) {
	before := pipeline.Score{Overall: 60, Color: 50, Typography: 70, Layout: 55, Composition: 65}
	got := improvements(before, composePlan(), 0.95)

	if got.Composition.After != 95 {
		t.Errorf("composition after = %d, want measured 95", got.Composition.After)
	}
}

func TestImprovementsCapped(t *testing.T) {
	before := pipeline.Score{Overall: 84, Color: 97, Typography: 97, Layout: 97, Composition: 97}
	got := improvements(before, composePlan(), 0)

	for _, sc := range []pipeline.ScoreChange{got.Color, got.Typography, got.Layout, got.Composition, got.Overall} {
		if sc.After > afterCap {
			t.Errorf("score after = %d exceeds cap %d", sc.After, afterCap)
		}
	}
	if got.Overall.After <= got.Overall.Before {
		t.Errorf("overall must still improve: %+v", got.Overall)
	}
}

func TestCompositeLayerMultiplyDarkens(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			dst.SetRGBA(x, y, imgcolor.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, imgcolor.RGBA{R: 100, G: 100, B: 100, A: 255})
		}
	}

	compositeLayer(dst, src, 0, 0, composition.BlendMultiply, 1)

	got := dst.RGBAAt(0, 0)
	// multiply(200, 100) = 200*100/255 = 78
	if got.R != 78 {
		t.Errorf("multiplied channel = %d, want 78", got.R)
	}
}

func TestCompositeLayerRespectsSourceAlpha(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	dst.SetRGBA(0, 0, imgcolor.RGBA{R: 200, G: 200, B: 200, A: 255})

	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, imgcolor.RGBA{A: 0})

	compositeLayer(dst, src, 0, 0, composition.BlendNormal, 1)

	if got := dst.RGBAAt(0, 0); got.R != 200 {
		t.Errorf("fully transparent source changed base to %d", got.R)
	}
}

func TestThumbnailPassthrough(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 100, 80))
	if got := thumbnail(small); got.Bounds().Dx() != 100 {
		t.Errorf("small image was scaled to %d", got.Bounds().Dx())
	}

	large := image.NewRGBA(image.Rect(0, 0, 640, 480))
	got := thumbnail(large)
	if got.Bounds().Dx() != thumbnailWidth || got.Bounds().Dy() != 240 {
		t.Errorf("thumbnail = %dx%d, want %dx240", got.Bounds().Dx(), got.Bounds().Dy(), thumbnailWidth)
	}
}

func TestBlankPage(t *testing.T) {
	img := blankPage(10, 10, "#336699")
	r, g, b, _ := img.At(5, 5).RGBA()
	if uint8(r>>8) != 0x33 || uint8(g>>8) != 0x66 || uint8(b>>8) != 0x99 {
		t.Errorf("page color = %x %x %x, want 33 66 99", r>>8, g>>8, b>>8)
	}

	fallback := blankPage(4, 4, "not-a-color")
	r, _, _, _ = fallback.At(0, 0).RGBA()
	if uint8(r>>8) != 255 {
		t.Error("unparseable color did not fall back to white")
	}
}

func TestSectionKind(t *testing.T) {
	tests := []struct {
		name string
		want layout.Kind
	}{
		{"header", layout.KindHeading},
		{"hero", layout.KindHeading},
		{"figure", layout.KindImage},
		{"footer", layout.KindCaption},
		{"body", layout.KindText},
	}
	for _, tc := range tests {
		if got := sectionKind(tc.name); got != tc.want {
			t.Errorf("sectionKind(%s) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestSectionElements(t *testing.T) {
	sections := []pipeline.Section{
		{Name: "header", Bounds: pipeline.SectionBounds{X: 1, Y: 2, Width: 3, Height: 4}},
	}
	elements := sectionElements(sections)
	if len(elements) != 1 {
		t.Fatalf("got %d elements", len(elements))
	}
	el := elements[0]
	if el.Kind != layout.KindHeading || el.Bounds.X != 1 || el.Bounds.Height != 4 {
		t.Errorf("element = %+v", el)
	}
	if el.ID != fmt.Sprintf("section-%d", 0) {
		t.Errorf("id = %s", el.ID)
	}
}
