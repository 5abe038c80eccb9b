package vision

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/burnishapp/burnish/internal/pipeline"
	"github.com/burnishapp/burnish/pkg/storage"
)

const sampleResponse = `{
  "text": {
    "title": "Team Offsite 2026",
    "headings": ["Agenda", "Logistics"],
    "body": ["Join us for two days of planning."],
    "captions": []
  },
  "layout": {
    "structure": "columnar",
    "sections": [
      {"name": "header", "bounds": {"x": 0, "y": 0, "width": 612, "height": 120}}
    ],
    "whitespace_pct": 0.22,
    "alignment": "left"
  },
  "issues": [
    {"dimension": "color", "severity": "high", "description": "body text fails contrast against the background"},
    {"dimension": "typography", "severity": "medium", "description": "five typefaces compete for attention"}
  ],
  "score": {"overall": 55, "color": 40, "typography": 50, "layout": 65, "composition": 60}
}`

type generateFunc func(ctx context.Context, model string, parts []*genai.Part, system string) (string, error)

func (f generateFunc) generate(ctx context.Context, model string, parts []*genai.Part, system string) (string, error) {
	return f(ctx, model, parts, system)
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAnalyzer(store storage.System, gen generator) *Analyzer {
	return &Analyzer{
		gen:      gen,
		store:    store,
		model:    DefaultModel,
		maxBytes: DefaultMaxSourceBytes,
		logger:   discard(),
	}
}

func visionRun(key string) pipeline.Context {
	return pipeline.Context{
		DocumentID: uuid.New(),
		OwnerID:    uuid.New(),
		Tier:       pipeline.TierPro,
		SourceKey:  key,
		FileKind:   "image",
		StartedAt:  time.Now(),
	}
}

func TestAnalyze(t *testing.T) {
	store := storage.NewMemory()
	if _, err := store.UploadBytes(context.Background(), "docs/offsite.png", encodePNG(t, 612, 792), "image/png"); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	var gotModel, gotSystem string
	var gotParts []*genai.Part
	gen := generateFunc(func(ctx context.Context, model string, parts []*genai.Part, system string) (string, error) {
		gotModel = model
		gotParts = parts
		gotSystem = system
		return sampleResponse, nil
	})

	a := testAnalyzer(store, gen)
	result, err := a.Analyze(context.Background(), visionRun("docs/offsite.png"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if gotModel != DefaultModel {
		t.Errorf("model = %s, want %s", gotModel, DefaultModel)
	}
	if !strings.Contains(gotSystem, "Respond with a JSON object") {
		t.Error("system instruction missing the response spec")
	}
	if len(gotParts) != 2 || gotParts[0].InlineData == nil {
		t.Fatalf("parts = %+v, want document blob plus text prompt", gotParts)
	}
	if gotParts[0].InlineData.MIMEType != "image/png" {
		t.Errorf("mime type = %s, want image/png", gotParts[0].InlineData.MIMEType)
	}

	if result.Text.Title != "Team Offsite 2026" {
		t.Errorf("title = %q", result.Text.Title)
	}
	if result.Score.Overall != 55 {
		t.Errorf("overall = %d, want 55", result.Score.Overall)
	}
	if len(result.Issues) != 2 || result.Issues[0].Severity != pipeline.SeverityHigh {
		t.Errorf("issues = %+v", result.Issues)
	}
	if result.Metadata["content_type"] != "image/png" {
		t.Errorf("metadata = %+v", result.Metadata)
	}
}

func TestAnalyzeMissingDocument(t *testing.T) {
	gen := generateFunc(func(ctx context.Context, model string, parts []*genai.Part, system string) (string, error) {
		t.Fatal("model called despite missing document")
		return "", nil
	})

	a := testAnalyzer(storage.NewMemory(), gen)
	if _, err := a.Analyze(context.Background(), visionRun("docs/absent.png")); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAnalyzeSourceTooLarge(t *testing.T) {
	store := storage.NewMemory()
	if _, err := store.UploadBytes(context.Background(), "docs/huge.png", encodePNG(t, 400, 400), "image/png"); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	gen := generateFunc(func(ctx context.Context, model string, parts []*genai.Part, system string) (string, error) {
		t.Fatal("model called despite oversized document")
		return "", nil
	})

	a := testAnalyzer(store, gen)
	a.maxBytes = 16

	if _, err := a.Analyze(context.Background(), visionRun("docs/huge.png")); !errors.Is(err, ErrSourceTooLarge) {
		t.Fatalf("err = %v, want ErrSourceTooLarge", err)
	}
}

func TestAnalyzeModelFailure(t *testing.T) {
	store := storage.NewMemory()
	if _, err := store.UploadBytes(context.Background(), "docs/a.png", encodePNG(t, 100, 100), "image/png"); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	boom := errors.New("model overloaded")
	gen := generateFunc(func(ctx context.Context, model string, parts []*genai.Part, system string) (string, error) {
		return "", boom
	})

	a := testAnalyzer(store, gen)
	if _, err := a.Analyze(context.Background(), visionRun("docs/a.png")); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped model failure", err)
	}
}

func TestParseAnalysisFencedResponse(t *testing.T) {
	fenced := "```json\n" + sampleResponse + "\n```"
	result, err := parseAnalysis(fenced)
	if err != nil {
		t.Fatalf("parseAnalysis: %v", err)
	}
	if result.Score.Overall != 55 {
		t.Errorf("overall = %d, want 55", result.Score.Overall)
	}
}

func TestParseAnalysisNormalization(t *testing.T) {
	raw := `{
	  "layout": {"whitespace_pct": 1.8},
	  "issues": [
	    {"dimension": "colour", "severity": "critical", "description": "clashing palette"},
	    {"dimension": "layout", "severity": "low", "description": ""}
	  ],
	  "score": {"overall": 0, "color": 120, "typography": -10, "layout": 60, "composition": 40}
	}`

	result, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("parseAnalysis: %v", err)
	}

	if result.Layout.WhitespacePct != 1 {
		t.Errorf("whitespace = %.2f, want clamped to 1", result.Layout.WhitespacePct)
	}
	if result.Score.Color != 100 || result.Score.Typography != 0 {
		t.Errorf("scores not clamped: %+v", result.Score)
	}
	// Missing overall derives from the clamped dimension scores.
	if want := (100 + 0 + 60 + 40) / 4; result.Score.Overall != want {
		t.Errorf("overall = %d, want %d", result.Score.Overall, want)
	}

	if len(result.Issues) != 1 {
		t.Fatalf("issues = %+v, want the empty description dropped", result.Issues)
	}
	if result.Issues[0].Dimension != pipeline.DimensionVisuals {
		t.Errorf("dimension = %s, want fallback to visuals", result.Issues[0].Dimension)
	}
	if result.Issues[0].Severity != pipeline.SeverityMedium {
		t.Errorf("severity = %s, want fallback to medium", result.Issues[0].Severity)
	}
}

func TestParseAnalysisGarbage(t *testing.T) {
	result, err := parseAnalysis("the document looks fine to me")
	if err != nil {
		t.Fatalf("parseAnalysis: %v, want degraded defaults for a non-JSON reply", err)
	}

	if result.Score.Overall != 50 {
		t.Errorf("overall = %d, want mid-range default 50", result.Score.Overall)
	}
	if len(result.Issues) != 1 || result.Issues[0].Severity != pipeline.SeverityMedium {
		t.Errorf("issues = %+v, want one medium-severity placeholder", result.Issues)
	}
	if result.Metadata["degraded"] != "true" {
		t.Errorf("metadata = %+v, want degraded flag set", result.Metadata)
	}
	// Mid-range default plus a medium issue keeps the run eligible for
	// enhancement instead of failing it.
	if !result.HasIssueAtLeast(pipeline.SeverityMedium) {
		t.Error("degraded result would not pass the enhancement gate")
	}
}
