// Package compose implements the final composition stage of the
// pipeline: it layers the original document, generated assets, and
// layout corrections into the enhanced render and its thumbnail.
package compose

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"time"

	"github.com/burnishapp/burnish/internal/pipeline"
	"github.com/burnishapp/burnish/pkg/composition"
	"github.com/burnishapp/burnish/pkg/docinfo"
	"github.com/burnishapp/burnish/pkg/layout"
	"github.com/burnishapp/burnish/pkg/storage"
)

// Default canvas for documents without intrinsic pixel dimensions
// (PDF sources), US letter at 150dpi.
const (
	defaultCanvasWidth  = 1275
	defaultCanvasHeight = 1650
)

// thumbnailWidth is the fixed thumbnail width; height preserves aspect.
const thumbnailWidth = 320

// Composer renders the enhanced document. It implements
// pipeline.Composer.
type Composer struct {
	store  storage.System
	logger *slog.Logger
}

// NewComposer creates a composer that reads and writes artifacts
// through the given storage system.
func NewComposer(store storage.System, logger *slog.Logger) *Composer {
	return &Composer{
		store:  store,
		logger: logger.With("system", "compose"),
	}
}

var _ pipeline.Composer = (*Composer)(nil)

// Compose builds the layer scene, applies layout corrections and
// balance adjustments, renders the enhanced document plus thumbnail,
// and uploads both.
func (c *Composer) Compose(ctx context.Context, run pipeline.Context, analysis *pipeline.AnalysisResult, plan *pipeline.Plan, assets *pipeline.Assets) (*pipeline.Result, error) {
	started := time.Now()

	base, err := c.loadBase(ctx, run, plan)
	if err != nil {
		return nil, err
	}

	bounds := base.Bounds()
	canvas := composition.Canvas{
		Width:  float64(bounds.Dx()),
		Height: float64(bounds.Dy()),
	}

	applied := []string{
		fmt.Sprintf("palette:%s", plan.Colors.Harmony),
		fmt.Sprintf("fonts:%s/%s", plan.Typography.HeadingFont, plan.Typography.BodyFont),
	}
	if plan.Colors.TargetAA {
		applied = append(applied, "contrast-aa")
	}
	applied = append(applied, c.applyLayout(analysis, plan, canvas)...)

	scene, err := c.buildScene(ctx, base, canvas, plan, assets, &applied)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Balance pass: apply the optimizer's proposals to the scene. The
	// optimizer only proposes; applying is this stage's decision.
	adjustments := scene.manager.OptimizeBalance(canvas, composition.OptimizeOptions{MaxAdjustments: 3})
	for _, adj := range adjustments {
		layer, ok := scene.manager.Get(adj.LayerID)
		if !ok {
			continue
		}
		switch adj.Field {
		case "x":
			layer.X = adj.To
		case "y":
			layer.Y = adj.To
		case "scale":
			layer.Scale = adj.To
		}
		if err := scene.manager.Update(layer); err != nil {
			return nil, fmt.Errorf("apply balance adjustment: %w", err)
		}
	}
	if len(adjustments) > 0 {
		applied = append(applied, fmt.Sprintf("balance-adjustments:%d", len(adjustments)))
	}

	rendered := render(scene, canvas)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enhancedURL, err := c.uploadPNG(ctx, fmt.Sprintf("enhanced/%s/document.png", run.DocumentID), rendered)
	if err != nil {
		return nil, fmt.Errorf("store enhanced document: %w", err)
	}

	thumbURL, err := c.uploadPNG(ctx, fmt.Sprintf("enhanced/%s/thumbnail.png", run.DocumentID), thumbnail(rendered))
	if err != nil {
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	balance := composition.ScoreBalance(scene.manager.RenderOrder(), canvas)

	c.logger.InfoContext(ctx, "composition complete",
		"document", run.DocumentID,
		"layers", scene.manager.Len(),
		"balance", balance.Overall,
		"duration", time.Since(started),
	)

	return &pipeline.Result{
		EnhancedURL:  enhancedURL,
		ThumbnailURL: thumbURL,
		Improvements: improvements(analysis.Score, plan, balance.Overall),
		Applied:      applied,
		Metadata: map[string]string{
			"canvas": fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
			"layers": fmt.Sprintf("%d", scene.manager.Len()),
		},
	}, nil
}

// loadBase downloads the source document and produces the base canvas
// image: decoded directly for image sources, a synthesized page in the
// plan's background color for PDF sources.
func (c *Composer) loadBase(ctx context.Context, run pipeline.Context, plan *pipeline.Plan) (image.Image, error) {
	data, err := c.store.DownloadBytes(ctx, run.SourceKey)
	if err != nil {
		return nil, fmt.Errorf("download source document: %w", err)
	}

	info, err := docinfo.Probe(data)
	if err != nil {
		return nil, fmt.Errorf("probe source document: %w", err)
	}

	if info.Kind == docinfo.KindImage {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode source image: %w", err)
		}
		return img, nil
	}

	return blankPage(defaultCanvasWidth, defaultCanvasHeight, plan.Colors.Background), nil
}

// scene pairs the layer manager with the raster content behind each
// layer id.
type scene struct {
	manager *composition.Manager
	images  map[string]image.Image
}

// buildScene assembles the layer stack: background asset (if any), the
// original document, then decorations and graphics placed by the
// placement search.
func (c *Composer) buildScene(ctx context.Context, base image.Image, canvas composition.Canvas, plan *pipeline.Plan, assets *pipeline.Assets, applied *[]string) (*scene, error) {
	s := &scene{
		manager: composition.NewManager(),
		images:  make(map[string]image.Image),
	}

	baseLum := averageLuminance(base)
	z := 0

	if len(assets.Backgrounds) > 0 {
		bg, err := c.loadAsset(ctx, assets.Backgrounds[0])
		if err != nil {
			return nil, err
		}
		id := s.manager.Add(composition.Layer{
			Type:       composition.LayerBackground,
			Content:    assets.Backgrounds[0].URL,
			Width:      canvas.Width,
			Height:     canvas.Height,
			Opacity:    1,
			Blend:      composition.BlendNormal,
			Z:          z,
			Importance: 0.9,
		})
		s.images[id] = bg
		z++
		*applied = append(*applied, "background-asset")
	}

	// The original document sits above any background. When a
	// background exists, blend the original into it so the texture
	// shows through without washing out the content.
	origBlend := composition.BlendSuggestion{Mode: composition.BlendNormal, Opacity: 1}
	if len(assets.Backgrounds) > 0 {
		bgLum := averageLuminance(s.images[s.manager.RenderOrder()[0].ID])
		origBlend = composition.SuggestBlend(composition.LayerOverlay, bgLum, baseLum)
	}
	origID := s.manager.Add(composition.Layer{
		Type:       composition.LayerOriginal,
		Content:    "original",
		Width:      canvas.Width,
		Height:     canvas.Height,
		Opacity:    origBlend.Opacity,
		Blend:      origBlend.Mode,
		Z:          z,
		Importance: 0.9,
	})
	s.images[origID] = base
	z++

	place := func(asset pipeline.GeneratedAsset, t composition.LayerType, widthFrac float64, opts composition.PlacementOptions) error {
		img, err := c.loadAsset(ctx, asset)
		if err != nil {
			return err
		}

		w := canvas.Width * widthFrac
		h := w
		if asset.Width > 0 && asset.Height > 0 {
			h = w * float64(asset.Height) / float64(asset.Width)
		}

		placement, err := composition.FindOptimalPlacement(
			composition.Size{Width: w, Height: h},
			canvas,
			s.manager.RenderOrder(),
			opts,
		)
		if err != nil {
			// An unplaceable asset is dropped, not fatal.
			c.logger.Warn("asset placement failed", "kind", asset.Kind, "error", err)
			return nil
		}

		suggestion := composition.SuggestBlend(t, baseLum, averageLuminance(img))
		id := s.manager.Add(composition.Layer{
			Type:    t,
			Content: asset.URL,
			X:       placement.X,
			Y:       placement.Y,
			Width:   w,
			Height:  h,
			Opacity: suggestion.Opacity,
			Blend:   suggestion.Mode,
			Z:       z,
		})
		s.images[id] = img
		z++
		return nil
	}

	for _, deco := range assets.Decorations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := place(deco, composition.LayerDecoration, 0.18, composition.PlacementOptions{
			Strategy:       composition.StrategyThirds,
			AvoidOverlap:   false,
			PreferredZones: []composition.Zone{composition.ZoneTopLeft, composition.ZoneBottomRight},
		})
		if err != nil {
			return nil, err
		}
	}

	for _, graphic := range assets.Graphics {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := place(graphic, composition.LayerGraphic, 0.3, composition.PlacementOptions{
			Strategy:     composition.StrategyGolden,
			AvoidOverlap: false,
		})
		if err != nil {
			return nil, err
		}
	}

	if n := len(assets.Decorations); n > 0 {
		*applied = append(*applied, fmt.Sprintf("decorations:%d", n))
	}
	if n := len(assets.Graphics); n > 0 {
		*applied = append(*applied, fmt.Sprintf("graphics:%d", n))
	}

	return s, nil
}

func (c *Composer) loadAsset(ctx context.Context, asset pipeline.GeneratedAsset) (image.Image, error) {
	key := asset.Metadata["key"]
	if key == "" {
		return nil, fmt.Errorf("asset %s has no storage key", asset.ID)
	}

	data, err := c.store.DownloadBytes(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download asset %s: %w", key, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", key, err)
	}
	return img, nil
}

func (c *Composer) uploadPNG(ctx context.Context, key string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	return c.store.UploadBytes(ctx, key, buf.Bytes(), "image/png")
}

// applyLayout runs the layout engine over the analyzed sections: grid
// snapping, alignment correction, spacing, and flow rearrangement per
// the plan. The corrections feed the applied-enhancement labels.
func (c *Composer) applyLayout(analysis *pipeline.AnalysisResult, plan *pipeline.Plan, canvas composition.Canvas) []string {
	var applied []string

	elements := sectionElements(analysis.Layout.Sections)
	if len(elements) == 0 {
		return applied
	}

	spec := plan.Layout.Grid
	spec.ContainerWidth = canvas.Width

	gridResult := layout.ApplyGrid(elements, spec, true)
	if n := len(gridResult.Changes); n > 0 {
		applied = append(applied, fmt.Sprintf("grid-snap:%d", n))
	}

	alignResult := layout.CorrectAlignment(gridResult.Elements, plan.Layout.Align)
	if n := len(alignResult.Changes); n > 0 {
		applied = append(applied, fmt.Sprintf("alignment:%d", n))
	}

	spacingResult := layout.OptimizeSpacing(alignResult.Elements, layout.SpacingOptions{
		Policy: plan.Layout.Spacing,
		Gap:    spec.Gutter,
	})
	if n := len(spacingResult.Changes); n > 0 {
		applied = append(applied, fmt.Sprintf("spacing-%s:%d", plan.Layout.Spacing, n))
	}

	lcanvas := layout.Canvas{Width: canvas.Width, Height: canvas.Height}
	if layout.ClassifyFlow(spacingResult.Elements, lcanvas) != plan.Layout.Flow {
		flowResult := layout.ArrangeFlow(spacingResult.Elements, lcanvas, plan.Layout.Flow)
		if len(flowResult.Changes) > 0 {
			applied = append(applied, fmt.Sprintf("flow:%s", plan.Layout.Flow))
		}
	}

	return applied
}

// sectionElements converts analyzed document sections into layout
// elements, inferring the element kind from the section name.
func sectionElements(sections []pipeline.Section) []layout.Element {
	elements := make([]layout.Element, 0, len(sections))
	for i, section := range sections {
		elements = append(elements, layout.Element{
			ID:   fmt.Sprintf("section-%d", i),
			Kind: sectionKind(section.Name),
			Bounds: layout.Bounds{
				X:      section.Bounds.X,
				Y:      section.Bounds.Y,
				Width:  section.Bounds.Width,
				Height: section.Bounds.Height,
			},
			ZIndex: i,
		})
	}
	return elements
}

func sectionKind(name string) layout.Kind {
	switch name {
	case "header", "title", "heading", "hero":
		return layout.KindHeading
	case "image", "photo", "figure":
		return layout.KindImage
	case "caption", "footer":
		return layout.KindCaption
	default:
		return layout.KindText
	}
}
