// Package vision implements the analysis stage of the pipeline: it
// sends the source document to a multimodal model and turns the
// response into a structured design assessment.
package vision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/burnishapp/burnish/internal/pipeline"
	"github.com/burnishapp/burnish/pkg/docinfo"
	"github.com/burnishapp/burnish/pkg/formatting"
	"github.com/burnishapp/burnish/pkg/storage"
)

// DefaultModel is the vision model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultMaxSourceBytes caps the document size sent inline to the
// model; the Gemini API rejects inline payloads above 20MB.
const DefaultMaxSourceBytes = 20 << 20

var (
	errEmptyResponse = errors.New("empty model response")

	// ErrSourceTooLarge indicates the source document exceeds the
	// inline payload limit.
	ErrSourceTooLarge = errors.New("source document too large")
)

// generator abstracts the model call so the analyzer can be exercised
// without network access.
type generator interface {
	generate(ctx context.Context, model string, parts []*genai.Part, system string) (string, error)
}

// geminiGenerator calls the Gemini API through the official client.
type geminiGenerator struct {
	client *genai.Client
}

func (g *geminiGenerator) generate(ctx context.Context, model string, parts []*genai.Part, system string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", errEmptyResponse
	}

	text := resp.Text()
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

// Analyzer downloads the source document and asks the vision model for
// a design assessment. It implements pipeline.Analyzer.
type Analyzer struct {
	gen      generator
	store    storage.System
	model    string
	maxBytes int64
	logger   *slog.Logger
}

// NewAnalyzer creates an analyzer backed by the Gemini client. An empty
// model falls back to DefaultModel; a non-positive maxBytes falls back
// to DefaultMaxSourceBytes.
func NewAnalyzer(client *genai.Client, store storage.System, model string, maxBytes int64, logger *slog.Logger) *Analyzer {
	if model == "" {
		model = DefaultModel
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxSourceBytes
	}
	return &Analyzer{
		gen:      &geminiGenerator{client: client},
		store:    store,
		model:    model,
		maxBytes: maxBytes,
		logger:   logger.With("system", "vision"),
	}
}

var _ pipeline.Analyzer = (*Analyzer)(nil)

// Analyze runs the analysis stage for one document.
func (a *Analyzer) Analyze(ctx context.Context, run pipeline.Context) (*pipeline.AnalysisResult, error) {
	data, err := a.store.DownloadBytes(ctx, run.SourceKey)
	if err != nil {
		return nil, fmt.Errorf("download source document: %w", err)
	}

	if int64(len(data)) > a.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %s",
			ErrSourceTooLarge,
			formatting.FormatBytes(int64(len(data)), 1),
			formatting.FormatBytes(a.maxBytes, 1),
		)
	}

	info, err := docinfo.Probe(data)
	if err != nil {
		return nil, fmt.Errorf("probe source document: %w", err)
	}

	a.logger.InfoContext(ctx, "analyzing document",
		"document", run.DocumentID,
		"kind", info.Kind,
		"size", info.SizeBytes,
	)

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: info.ContentType, Data: data}},
		{Text: "Assess this document's design quality."},
	}

	text, err := a.gen.generate(ctx, a.model, parts, analyzeInstructions+"\n\n"+analyzeSpec)
	if err != nil {
		return nil, fmt.Errorf("vision analysis: %w", err)
	}

	result, err := parseAnalysis(text)
	if err != nil {
		return nil, fmt.Errorf("vision analysis: %w", err)
	}

	if result.Metadata == nil {
		result.Metadata = make(map[string]string, 2)
	}
	result.Metadata["model"] = a.model
	result.Metadata["content_type"] = info.ContentType

	if result.Metadata["degraded"] == "true" {
		a.logger.WarnContext(ctx, "model response unparseable, analysis degraded to defaults",
			"document", run.DocumentID,
		)
	}

	a.logger.InfoContext(ctx, "analysis complete",
		"document", run.DocumentID,
		"overall", result.Score.Overall,
		"issues", len(result.Issues),
	)

	return result, nil
}
