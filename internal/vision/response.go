package vision

import (
	"errors"

	"github.com/burnishapp/burnish/internal/pipeline"
	"github.com/burnishapp/burnish/pkg/formatting"
)

// analysisResponse is the wire shape the model is asked to produce. It
// mirrors pipeline.AnalysisResult but tolerates loose enum values,
// which are normalized before the result enters the pipeline.
type analysisResponse struct {
	Text   pipeline.TextContent    `json:"text"`
	Layout pipeline.LayoutAnalysis `json:"layout"`
	Issues []issueResponse         `json:"issues"`
	Score  pipeline.Score          `json:"score"`
}

type issueResponse struct {
	Dimension   string `json:"dimension"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// parseAnalysis parses the model's response text and normalizes it into
// an AnalysisResult. Unknown enum values degrade to conservative
// defaults rather than failing the stage; a response with no JSON in it
// at all degrades to degradedAnalysis.
func parseAnalysis(content string) (*pipeline.AnalysisResult, error) {
	resp, err := formatting.Parse[analysisResponse](content)
	if err != nil {
		if errors.Is(err, formatting.ErrParseFailed) {
			return degradedAnalysis(), nil
		}
		return nil, err
	}

	result := &pipeline.AnalysisResult{
		Text:   resp.Text,
		Layout: resp.Layout,
		Score:  normalizeScore(resp.Score),
	}

	result.Layout.WhitespacePct = clampFraction(result.Layout.WhitespacePct)

	for _, issue := range resp.Issues {
		if issue.Description == "" {
			continue
		}
		result.Issues = append(result.Issues, pipeline.DesignIssue{
			Dimension:   normalizeDimension(issue.Dimension),
			Severity:    normalizeSeverity(issue.Severity),
			Description: issue.Description,
		})
	}

	return result, nil
}

// degradedAnalysis is the fallback when the model reply carries no
// parseable JSON: mid-range scores below the quality gate plus one
// medium issue, so the run proceeds with a general enhancement pass.
// The metadata flag marks the result as degraded for downstream logs.
func degradedAnalysis() *pipeline.AnalysisResult {
	return &pipeline.AnalysisResult{
		Score: pipeline.Score{
			Overall:     50,
			Color:       50,
			Typography:  50,
			Layout:      50,
			Composition: 50,
		},
		Issues: []pipeline.DesignIssue{{
			Dimension:   pipeline.DimensionVisuals,
			Severity:    pipeline.SeverityMedium,
			Description: "automated analysis unavailable; applying general enhancements",
		}},
		Metadata: map[string]string{"degraded": "true"},
	}
}

// normalizeScore clamps every rating to 0-100. A missing overall score
// falls back to the mean of the dimension scores so the quality gate
// always has something to evaluate.
func normalizeScore(s pipeline.Score) pipeline.Score {
	s.Color = clampScore(s.Color)
	s.Typography = clampScore(s.Typography)
	s.Layout = clampScore(s.Layout)
	s.Composition = clampScore(s.Composition)
	s.Overall = clampScore(s.Overall)

	if s.Overall == 0 {
		s.Overall = (s.Color + s.Typography + s.Layout + s.Composition) / 4
	}
	return s
}

func normalizeDimension(d string) pipeline.Dimension {
	switch pipeline.Dimension(d) {
	case pipeline.DimensionColor, pipeline.DimensionTypography, pipeline.DimensionLayout, pipeline.DimensionVisuals:
		return pipeline.Dimension(d)
	default:
		return pipeline.DimensionVisuals
	}
}

// normalizeSeverity maps unknown severities to medium: an issue the
// model bothered to report should be able to pass the enhancement gate.
func normalizeSeverity(s string) pipeline.IssueSeverity {
	switch pipeline.IssueSeverity(s) {
	case pipeline.SeverityLow, pipeline.SeverityMedium, pipeline.SeverityHigh:
		return pipeline.IssueSeverity(s)
	default:
		return pipeline.SeverityMedium
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
