package pipeline

import "time"

// ScoreChange is a before/after pair for one dimension.
type ScoreChange struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

// Improvements reports the score movement the run achieved.
type Improvements struct {
	Overall     ScoreChange `json:"overall"`
	Color       ScoreChange `json:"color"`
	Typography  ScoreChange `json:"typography"`
	Layout      ScoreChange `json:"layout"`
	Composition ScoreChange `json:"composition"`
}

// Result is the terminal artifact of a completed run, immutable.
type Result struct {
	EnhancedURL  string                  `json:"enhanced_url"`
	ThumbnailURL string                  `json:"thumbnail_url"`
	Improvements Improvements            `json:"improvements"`
	Applied      []string                `json:"applied"`
	StageTimings map[Stage]time.Duration `json:"stage_timings"`
	Metadata     map[string]string       `json:"metadata,omitempty"`
}
