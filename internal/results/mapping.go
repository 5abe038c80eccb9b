package results

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/burnishapp/burnish/pkg/query"
	"github.com/burnishapp/burnish/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "pipeline_results", "r").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("owner_id", "OwnerID").
	Project("status", "Status").
	Project("stages", "Stages").
	Project("processing_ms", "ProcessingMS").
	Project("score_before", "ScoreBefore").
	Project("score_after", "ScoreAfter").
	Project("artifact_url", "ArtifactURL").
	Project("thumbnail_url", "ThumbnailURL").
	Project("run_context", "RunContext").
	Project("stage_errors", "StageErrors").
	Project("completed_at", "CompletedAt")

var defaultSort = query.SortField{
	Field:      "CompletedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for result queries.
// Nil fields are ignored.
type Filters struct {
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	OwnerID    *uuid.UUID `json:"owner_id,omitempty"`
	Status     *string    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("OwnerID", f.OwnerID).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	if o := values.Get("owner_id"); o != "" {
		if id, err := uuid.Parse(o); err == nil {
			f.OwnerID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanResult(s repository.Scanner) (PipelineResult, error) {
	var r PipelineResult
	var stagesRaw []byte

	err := s.Scan(
		&r.ID,
		&r.DocumentID,
		&r.OwnerID,
		&r.Status,
		&stagesRaw,
		&r.ProcessingMS,
		&r.ScoreBefore,
		&r.ScoreAfter,
		&r.ArtifactURL,
		&r.ThumbnailURL,
		&r.RunContext,
		&r.StageErrors,
		&r.CompletedAt,
	)

	if err != nil {
		return r, err
	}

	if len(stagesRaw) > 0 {
		if err := json.Unmarshal(stagesRaw, &r.Stages); err != nil {
			return r, fmt.Errorf("unmarshal stages: %w", err)
		}
	}

	if r.Stages == nil {
		r.Stages = []string{}
	}

	return r, nil
}
