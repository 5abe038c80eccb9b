// Package assets implements the asset-generation stage of the pipeline:
// it turns a plan's asset requirements into stored images, generated by
// an image model with a deterministic local fallback.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/burnishapp/burnish/internal/pipeline"
	"github.com/burnishapp/burnish/pkg/formatting"
	"github.com/burnishapp/burnish/pkg/storage"
)

// Image generation models by capability level.
const (
	ModelImageStandard = "gemini-2.5-flash-image-preview"
	ModelImagePro      = "gemini-3-pro-image-preview"
)

// FallbackModel labels assets produced by the local gradient renderer.
const FallbackModel = "fallback"

var errNoImage = errors.New("no image in model response")

// imageGenerator abstracts the model call so the generator can be
// exercised without network access.
type imageGenerator interface {
	generateImage(ctx context.Context, model, prompt string) ([]byte, string, error)
}

// geminiImageGenerator produces images through the Gemini API.
type geminiImageGenerator struct {
	client *genai.Client
}

func (g *geminiImageGenerator) generateImage(ctx context.Context, model, prompt string) ([]byte, string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: generateInstructions}},
		},
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, "", fmt.Errorf("generate image: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, nil
			}
		}
	}

	return nil, "", errNoImage
}

// Generator fulfills a plan's asset requirements. It implements
// pipeline.AssetGenerator. Model failures degrade to locally rendered
// gradients; only storage failures fail the stage.
type Generator struct {
	gen    imageGenerator
	store  storage.System
	model  string
	logger *slog.Logger
}

// NewGenerator creates a generator backed by the Gemini client. An
// empty model falls back to the standard image model.
func NewGenerator(client *genai.Client, store storage.System, model string, logger *slog.Logger) *Generator {
	if model == "" {
		model = ModelImageStandard
	}
	return &Generator{
		gen:    &geminiImageGenerator{client: client},
		store:  store,
		model:  model,
		logger: logger.With("system", "assets"),
	}
}

var _ pipeline.AssetGenerator = (*Generator)(nil)

// ModelForTier returns the image model a tier is entitled to.
func ModelForTier(tier pipeline.Tier) string {
	if tier == pipeline.TierPremium {
		return ModelImagePro
	}
	return ModelImageStandard
}

// Generate produces and stores one asset per plan requirement.
func (g *Generator) Generate(ctx context.Context, run pipeline.Context, plan *pipeline.Plan) (*pipeline.Assets, error) {
	out := &pipeline.Assets{}

	for i, req := range plan.Assets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		asset, err := g.generateOne(ctx, run, plan, req, i)
		if err != nil {
			return nil, err
		}

		switch req.Kind {
		case pipeline.AssetBackground:
			out.Backgrounds = append(out.Backgrounds, *asset)
		case pipeline.AssetDecoration:
			out.Decorations = append(out.Decorations, *asset)
		default:
			out.Graphics = append(out.Graphics, *asset)
		}
	}

	g.logger.InfoContext(ctx, "asset generation complete",
		"document", run.DocumentID,
		"count", out.Count(),
	)

	return out, nil
}

func (g *Generator) generateOne(ctx context.Context, run pipeline.Context, plan *pipeline.Plan, req pipeline.AssetRequirement, index int) (*pipeline.GeneratedAsset, error) {
	model := g.model
	data, mime, err := g.gen.generateImage(ctx, model, buildPrompt(req, plan.Colors))
	if err == nil {
		// Reject responses that do not decode as an image.
		if _, _, derr := image.DecodeConfig(bytes.NewReader(data)); derr != nil {
			err = fmt.Errorf("undecodable model output: %w", derr)
		}
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		g.logger.Warn("image model failed, rendering fallback",
			"document", run.DocumentID,
			"kind", req.Kind,
			"error", err,
		)

		data, err = fallbackImage(req, plan.Colors)
		if err != nil {
			return nil, fmt.Errorf("render fallback %s: %w", req.Kind, err)
		}
		mime = "image/png"
		model = FallbackModel
	}

	width, height := req.Width, req.Height
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		width, height = cfg.Width, cfg.Height
	}

	ext := "png"
	if mime == "image/jpeg" {
		ext = "jpg"
	}
	key := fmt.Sprintf("assets/%s/%s-%d.%s", run.DocumentID, req.Kind, index, ext)
	url, err := g.store.UploadBytes(ctx, key, data, mime)
	if err != nil {
		return nil, fmt.Errorf("store %s asset: %w", req.Kind, err)
	}

	g.logger.InfoContext(ctx, "asset stored",
		"document", run.DocumentID,
		"kind", req.Kind,
		"model", model,
		"size", formatting.FormatBytes(int64(len(data)), 1),
	)

	return &pipeline.GeneratedAsset{
		ID:        uuid.New(),
		Kind:      req.Kind,
		URL:       url,
		Width:     width,
		Height:    height,
		SizeBytes: int64(len(data)),
		Model:     model,
		Metadata:  map[string]string{"style": req.Style, "key": key},
	}, nil
}
