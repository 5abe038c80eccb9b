package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/burnishapp/burnish/pkg/color"
	"github.com/burnishapp/burnish/pkg/layout"
	"github.com/burnishapp/burnish/pkg/typography"
)

// Quality thresholds steering the plan's aggressiveness.
const (
	subtleThreshold   = 70
	moderateThreshold = 50
)

const defaultBaseColor = "#336699"

// BuildPlan derives an enhancement plan from the immutable analysis
// result. The four fragments (colors, typography, layout, asset
// requirements) are independent and derived concurrently; each
// goroutine only reads the shared analysis and writes its own slot.
func BuildPlan(ctx context.Context, run Context, analysis *AnalysisResult) (*Plan, error) {
	plan := &Plan{
		Strategy: buildStrategy(analysis),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		plan.Colors = buildColorSpec(run, analysis, plan.Strategy.Approach)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		plan.Typography = buildTypographySpec(run, analysis)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		plan.Layout = buildLayoutSpec(run, analysis)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		plan.Assets = buildAssetRequirements(run, analysis, plan.Strategy.Approach)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("derive plan: %w", err)
	}

	return plan, nil
}

// buildStrategy picks the approach from the overall score and ranks the
// four dimensions by issue pressure: high-severity count first, then
// medium, then the default order (color, typography, layout, visuals).
func buildStrategy(analysis *AnalysisResult) Strategy {
	var approach Approach
	switch {
	case analysis.Score.Overall >= subtleThreshold:
		approach = ApproachSubtle
	case analysis.Score.Overall >= moderateThreshold:
		approach = ApproachModerate
	default:
		approach = ApproachDramatic
	}

	defaultOrder := []Dimension{DimensionColor, DimensionTypography, DimensionLayout, DimensionVisuals}

	high := make(map[Dimension]int)
	medium := make(map[Dimension]int)
	for _, issue := range analysis.Issues {
		switch issue.Severity {
		case SeverityHigh:
			high[issue.Dimension]++
		case SeverityMedium:
			medium[issue.Dimension]++
		}
	}

	priority := slices.Clone(defaultOrder)
	rank := func(d Dimension) int { return slices.Index(defaultOrder, d) }
	slices.SortStableFunc(priority, func(a, b Dimension) int {
		if c := high[b] - high[a]; c != 0 {
			return c
		}
		if c := medium[b] - medium[a]; c != 0 {
			return c
		}
		return rank(a) - rank(b)
	})

	impact := 100 - analysis.Score.Overall
	if impact > 95 {
		impact = 95
	}
	if impact < 5 {
		impact = 5
	}

	return Strategy{
		Approach:        approach,
		Priority:        priority,
		EstimatedImpact: impact,
	}
}

func buildColorSpec(run Context, analysis *AnalysisResult, approach Approach) ColorSpec {
	base := parseBaseColor(run.Settings.ColorScheme)

	var palette []color.HSL
	var harmony color.Harmony
	switch approach {
	case ApproachSubtle:
		harmony = color.HarmonyAnalogous
		palette = color.Analogous(base, 3)
	case ApproachModerate:
		harmony = color.HarmonyComplementary
		palette = color.Complementary(base, color.ComplementaryOptions{IncludeVariants: true})
	default:
		harmony = color.HarmonyTriadic
		palette = color.Triadic(base)
	}

	palette = color.Harmonize(palette, color.StrategyLuminanceSpread)

	// Text color: whichever of near-black or the darkest palette entry
	// reads against white at AA.
	text := color.HSL{H: base.H, S: 0.1, L: 0.15}
	fix := color.FixContrast(text, color.HSL{L: 1}, color.RatioAA)

	hexes := make([]string, len(palette))
	for i, c := range palette {
		hexes[i] = c.Hex()
	}

	return ColorSpec{
		Primary:    base.Hex(),
		Palette:    hexes,
		Harmony:    string(harmony),
		TargetAA:   true,
		Background: "#FFFFFF",
		Semantic: map[string]string{
			"text":   fix.Foreground.Hex(),
			"accent": palette[len(palette)-1].Hex(),
		},
	}
}

func parseBaseColor(scheme string) color.HSL {
	hex := scheme
	if !strings.HasPrefix(hex, "#") {
		hex = defaultBaseColor
	}
	rgb, err := color.ParseHex(hex)
	if err != nil {
		rgb, _ = color.ParseHex(defaultBaseColor)
	}
	return rgb.HSL()
}

func buildTypographySpec(run Context, analysis *AnalysisResult) TypographySpec {
	primary := primaryFontFor(run.Settings.Style)

	pairings := typography.SuggestPairings(primary, typography.PairingOptions{
		Strategy: typography.StrategyContrast,
		Purpose:  typography.PurposeHeadingBody,
		Limit:    1,
	})

	body := primary
	rationale := ""
	if len(pairings) > 0 {
		body = pairings[0].Font.Name
		rationale = pairings[0].Rationale
	}

	ratio := typography.RatioMajorThird
	if run.Settings.LayoutDensity == "compact" {
		ratio = typography.RatioMinorThird
	}

	scale := typography.BuildScale(16, typography.ScaleOptions{Ratio: ratio})
	lineHeight := typography.LineHeight(float64(scale.Body), typography.MetricsOptions{
		Category: typography.Lookup(body).Category,
	})

	return TypographySpec{
		HeadingFont: primary,
		BodyFont:    body,
		Rationale:   rationale,
		Scale:       scale,
		LineHeight:  lineHeight,
	}
}

func primaryFontFor(style string) string {
	switch style {
	case "playful":
		return "Nunito"
	case "elegant":
		return "Playfair Display"
	case "technical":
		return "Roboto"
	default:
		return "Montserrat"
	}
}

func buildLayoutSpec(run Context, analysis *AnalysisResult) LayoutSpec {
	columns := 12
	gutter := 16.0
	if run.Settings.LayoutDensity == "compact" {
		gutter = 8
	}
	if run.Settings.LayoutDensity == "spacious" {
		columns = 6
		gutter = 24
	}

	flow := layout.FlowLinear
	switch analysis.Layout.Structure {
	case "columnar", "dense":
		flow = layout.FlowF
	case "grid", "mixed":
		flow = layout.FlowZ
	}

	spacing := layout.SpacingEqual
	if analysis.Layout.WhitespacePct < 0.15 {
		spacing = layout.SpacingRhythmic
	}

	return LayoutSpec{
		Grid: layout.GridSpec{
			ContainerWidth: 1200,
			Columns:        columns,
			Gutter:         gutter,
			Margin:         gutter * 2,
		},
		Flow:    flow,
		Spacing: spacing,
		Align:   layout.AlignmentOptions{Optical: true},
	}
}

func buildAssetRequirements(run Context, analysis *AnalysisResult, approach Approach) []AssetRequirement {
	if !run.Settings.GenerateAssets {
		return nil
	}

	style := run.Settings.Style
	if style == "" {
		style = "modern"
	}

	subject := analysis.Text.Title
	if subject == "" {
		subject = "the document"
	}

	reqs := []AssetRequirement{{
		Kind:   AssetBackground,
		Style:  style,
		Prompt: fmt.Sprintf("A %s background texture suitable for %s", style, subject),
		Width:  1600,
		Height: 1200,
	}}

	if approach != ApproachSubtle {
		reqs = append(reqs, AssetRequirement{
			Kind:   AssetDecoration,
			Style:  style,
			Prompt: fmt.Sprintf("Small %s decorative corner accents, transparent background", style),
			Width:  400,
			Height: 400,
		})
	}

	if approach == ApproachDramatic && len(analysis.Layout.Sections) > 0 {
		reqs = append(reqs, AssetRequirement{
			Kind:   AssetGraphic,
			Style:  style,
			Prompt: fmt.Sprintf("An illustrative %s graphic about %s", style, subject),
			Width:  800,
			Height: 600,
		})
	}

	return reqs
}
