// Package pipeline implements the document-enhancement pipeline: a
// four-stage orchestrator (analysis, planning, asset generation,
// composition) with per-stage caching, progress reporting, and
// cooperative cancellation. Collaborators (vision analysis, asset
// generation, composition, persistence) are injected as interfaces;
// the orchestrator owns all run state and exposes it only as
// snapshots.
package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// Tier is a subscription level gating pipeline behavior.
type Tier string

// Subscription tiers, ordered free < basic < pro < premium.
const (
	TierFree    Tier = "free"
	TierBasic   Tier = "basic"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// Rank returns the tier's position in the ordering; unknown tiers rank
// below free.
func (t Tier) Rank() int {
	switch t {
	case TierFree:
		return 0
	case TierBasic:
		return 1
	case TierPro:
		return 2
	case TierPremium:
		return 3
	default:
		return -1
	}
}

// Settings carries the user's enhancement preferences for one run.
type Settings struct {
	Style           string `json:"style"`
	ColorScheme     string `json:"color_scheme"`
	LayoutDensity   string `json:"layout_density"`
	GenerateAssets  bool   `json:"generate_assets"`
	PreserveContent bool   `json:"preserve_content"`
}

// Context is the immutable per-run descriptor. It is created once at
// pipeline construction and never mutated.
type Context struct {
	DocumentID uuid.UUID `json:"document_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Tier       Tier      `json:"tier"`
	SourceKey  string    `json:"source_key"`
	FileKind   string    `json:"file_kind"`
	StartedAt  time.Time `json:"started_at"`
	Settings   Settings  `json:"settings"`
}

// IssueSeverity grades a design issue.
type IssueSeverity string

// Issue severities.
const (
	SeverityLow    IssueSeverity = "low"
	SeverityMedium IssueSeverity = "medium"
	SeverityHigh   IssueSeverity = "high"
)

// Dimension names one of the four enhancement dimensions.
type Dimension string

// Enhancement dimensions.
const (
	DimensionColor      Dimension = "color"
	DimensionTypography Dimension = "typography"
	DimensionLayout     Dimension = "layout"
	DimensionVisuals    Dimension = "visuals"
)

// DesignIssue is one problem found during analysis.
type DesignIssue struct {
	Dimension   Dimension     `json:"dimension"`
	Severity    IssueSeverity `json:"severity"`
	Description string        `json:"description"`
}

// Score holds the document's quality ratings, each 0-100.
type Score struct {
	Overall     int `json:"overall"`
	Color       int `json:"color"`
	Typography  int `json:"typography"`
	Layout      int `json:"layout"`
	Composition int `json:"composition"`
}

// TextContent is the text extracted from the document.
type TextContent struct {
	Title    string   `json:"title"`
	Headings []string `json:"headings"`
	Body     []string `json:"body"`
	Captions []string `json:"captions"`
}

// SectionBounds locates a detected document section.
type SectionBounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Section is one detected region of the document.
type Section struct {
	Name   string        `json:"name"`
	Bounds SectionBounds `json:"bounds"`
}

// LayoutAnalysis describes the document's current spatial structure.
type LayoutAnalysis struct {
	Structure     string    `json:"structure"`
	Sections      []Section `json:"sections"`
	WhitespacePct float64   `json:"whitespace_pct"`
	Alignment     string    `json:"alignment"`
}

// AnalysisResult is the output of the initial analysis stage. It is
// produced once per run (or retrieved from cache), consumed by all
// later stages, and never mutated after creation.
type AnalysisResult struct {
	Text     TextContent       `json:"text"`
	Layout   LayoutAnalysis    `json:"layout"`
	Issues   []DesignIssue     `json:"issues"`
	Score    Score             `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// HasIssueAtLeast reports whether any issue reaches the given severity.
func (a *AnalysisResult) HasIssueAtLeast(min IssueSeverity) bool {
	for _, issue := range a.Issues {
		if severityRank(issue.Severity) >= severityRank(min) {
			return true
		}
	}
	return false
}

func severityRank(s IssueSeverity) int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	default:
		return -1
	}
}
