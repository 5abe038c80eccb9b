// Package results persists and queries pipeline-result records: one row
// per completed enhancement run.
package results

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PipelineResult is the persisted record of one completed run.
type PipelineResult struct {
	ID           uuid.UUID       `json:"id"`
	DocumentID   uuid.UUID       `json:"document_id"`
	OwnerID      uuid.UUID       `json:"owner_id"`
	Status       string          `json:"status"`
	Stages       []string        `json:"stages"`
	ProcessingMS int64           `json:"processing_ms"`
	ScoreBefore  int             `json:"score_before"`
	ScoreAfter   int             `json:"score_after"`
	ArtifactURL  string          `json:"artifact_url"`
	ThumbnailURL string          `json:"thumbnail_url"`
	RunContext   json.RawMessage `json:"run_context"`
	StageErrors  json.RawMessage `json:"stage_errors,omitempty"`
	CompletedAt  time.Time       `json:"completed_at"`
}

// ScoreDelta returns the overall score improvement the run achieved.
func (r PipelineResult) ScoreDelta() int {
	return r.ScoreAfter - r.ScoreBefore
}
