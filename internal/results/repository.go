package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/burnishapp/burnish/internal/pipeline"
	"github.com/burnishapp/burnish/pkg/pagination"
	"github.com/burnishapp/burnish/pkg/query"
	"github.com/burnishapp/burnish/pkg/repository"
)

// System is the pipeline-result persistence surface. Record satisfies
// pipeline.Recorder so a repository can be wired directly into a run.
type System interface {
	Record(ctx context.Context, run pipeline.Context, snap pipeline.Snapshot, result *pipeline.Result) error
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[PipelineResult], error)
	Find(ctx context.Context, id uuid.UUID) (*PipelineResult, error)
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]PipelineResult, error)
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a result repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "results"),
		pagination: pagination,
	}
}

func (r *repo) Record(
	ctx context.Context,
	run pipeline.Context,
	snap pipeline.Snapshot,
	result *pipeline.Result,
) error {
	stages := snap.CompletedStages()
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, string(s))
	}

	stagesJSON, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("marshal stages: %w", err)
	}

	runJSON, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run context: %w", err)
	}

	errorsJSON, err := json.Marshal(snap.Errors)
	if err != nil {
		return fmt.Errorf("marshal stage errors: %w", err)
	}

	insertQ := `
		INSERT INTO pipeline_results(
			document_id, owner_id, status, stages, processing_ms,
			score_before, score_after, artifact_url, thumbnail_url,
			run_context, stage_errors
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, document_id, owner_id, status, stages, processing_ms,
				  score_before, score_after, artifact_url, thumbnail_url,
				  run_context, stage_errors, completed_at`

	insertArgs := []any{
		run.DocumentID,
		run.OwnerID,
		string(snap.Status),
		stagesJSON,
		snap.UpdatedAt.Sub(run.StartedAt).Milliseconds(),
		result.Improvements.Overall.Before,
		result.Improvements.Overall.After,
		result.EnhancedURL,
		result.ThumbnailURL,
		runJSON,
		errorsJSON,
	}

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (PipelineResult, error) {
		pr, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanResult)
		if err != nil {
			return PipelineResult{}, fmt.Errorf("insert pipeline result: %w", err)
		}
		return pr, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("pipeline result recorded",
		"id", rec.ID,
		"document_id", rec.DocumentID,
		"score_delta", rec.ScoreDelta(),
		"processing_ms", rec.ProcessingMS,
	)
	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[PipelineResult], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Status", "ArtifactURL")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count pipeline results: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanResult)
	if err != nil {
		return nil, fmt.Errorf("query pipeline results: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*PipelineResult, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	pr, err := repository.QueryOne(ctx, r.db, q, args, scanResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &pr, nil
}

func (r *repo) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]PipelineResult, error) {
	qb := query.NewBuilder(projection, defaultSort)
	qb.WhereEquals("DocumentID", &documentID)

	pageSQL, pageArgs := qb.BuildPage(1, 100)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanResult)
	if err != nil {
		return nil, fmt.Errorf("query document results: %w", err)
	}
	return items, nil
}

var _ pipeline.Recorder = (System)(nil)
