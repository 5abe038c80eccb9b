package pipeline

import (
	"github.com/burnishapp/burnish/pkg/layout"
	"github.com/burnishapp/burnish/pkg/typography"
)

// Approach controls how aggressively the plan reworks the document.
type Approach string

// Enhancement approaches.
const (
	ApproachSubtle   Approach = "subtle"
	ApproachModerate Approach = "moderate"
	ApproachDramatic Approach = "dramatic"
)

// Strategy is the plan's top-level decision: how hard to push, in what
// order, and the expected payoff.
type Strategy struct {
	Approach        Approach    `json:"approach"`
	Priority        []Dimension `json:"priority"`
	EstimatedImpact int         `json:"estimated_impact"`
}

// ColorSpec is the planned palette and contrast work.
type ColorSpec struct {
	Primary    string            `json:"primary"`
	Palette    []string          `json:"palette"`
	Semantic   map[string]string `json:"semantic,omitempty"`
	Harmony    string            `json:"harmony"`
	TargetAA   bool              `json:"target_aa"`
	Background string            `json:"background"`
}

// TypographySpec is the planned font treatment.
type TypographySpec struct {
	HeadingFont string           `json:"heading_font"`
	BodyFont    string           `json:"body_font"`
	Rationale   string           `json:"rationale,omitempty"`
	Scale       typography.Scale `json:"scale"`
	LineHeight  float64          `json:"line_height"`
}

// LayoutSpec is the planned spatial rework.
type LayoutSpec struct {
	Grid    layout.GridSpec         `json:"grid"`
	Flow    layout.Flow             `json:"flow"`
	Spacing layout.SpacingPolicy    `json:"spacing"`
	Align   layout.AlignmentOptions `json:"align"`
}

// AssetKind classifies a generated asset.
type AssetKind string

// Asset kinds.
const (
	AssetBackground AssetKind = "background"
	AssetDecoration AssetKind = "decoration"
	AssetGraphic    AssetKind = "graphic"
)

// AssetRequirement describes one asset the plan calls for.
type AssetRequirement struct {
	Kind   AssetKind `json:"kind"`
	Style  string    `json:"style"`
	Prompt string    `json:"prompt"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
}

// Plan is the enhancement planning stage's output, derived from the
// analysis result and immutable once produced.
type Plan struct {
	Strategy   Strategy           `json:"strategy"`
	Colors     ColorSpec          `json:"colors"`
	Typography TypographySpec     `json:"typography"`
	Layout     LayoutSpec         `json:"layout"`
	Assets     []AssetRequirement `json:"assets"`
}
