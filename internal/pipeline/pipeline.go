package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/burnishapp/burnish/pkg/cache"
)

// Quality gate: runs abort when the document scores at or above this
// threshold, or when no medium/high issue exists.
const gateThreshold = 85

// DefaultCacheTTL bounds how long a cached stage result stays fresh.
const DefaultCacheTTL = time.Hour

// Analyzer produces the initial analysis for a run. Implementations
// must observe ctx cancellation.
type Analyzer interface {
	Analyze(ctx context.Context, run Context) (*AnalysisResult, error)
}

// AssetGenerator produces supporting assets for a plan.
type AssetGenerator interface {
	Generate(ctx context.Context, run Context, plan *Plan) (*Assets, error)
}

// Composer renders the enhanced document from the accumulated stage
// outputs.
type Composer interface {
	Compose(ctx context.Context, run Context, analysis *AnalysisResult, plan *Plan, assets *Assets) (*Result, error)
}

// Recorder persists one pipeline-result record per completed run.
type Recorder interface {
	Record(ctx context.Context, run Context, snap Snapshot, result *Result) error
}

// Config assembles a pipeline's collaborators and policies.
type Config struct {
	Analyzer  Analyzer
	Generator AssetGenerator
	Composer  Composer
	Recorder  Recorder
	Cache     cache.Cache
	Logger    *slog.Logger

	// CacheTTL bounds stage-result freshness. Zero means one hour.
	CacheTTL time.Duration
	// BasicAssetRatioPct is the percentage of basic-tier documents
	// admitted to asset generation.
	BasicAssetRatioPct int
}

// Pipeline orchestrates one enhancement run. A Pipeline executes at
// most once; construct a new one per run.
type Pipeline struct {
	run       Context
	analyzer  Analyzer
	generator AssetGenerator
	composer  Composer
	recorder  Recorder
	cache     cache.Cache
	cacheTTL  time.Duration
	basicPct  int
	logger    *slog.Logger

	mu        sync.Mutex
	state     *state
	observers []func(Snapshot)
	cancel    context.CancelFunc
	executed  bool
}

// New creates a pipeline for the given run context.
func New(run Context, cfg Config) *Pipeline {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		run:       run,
		analyzer:  cfg.Analyzer,
		generator: cfg.Generator,
		composer:  cfg.Composer,
		recorder:  cfg.Recorder,
		cache:     cfg.Cache,
		cacheTTL:  ttl,
		basicPct:  cfg.BasicAssetRatioPct,
		logger:    logger.With("system", "pipeline", "document", run.DocumentID),
		state:     newState(),
	}
}

// State returns a read-only snapshot of the run.
func (p *Pipeline) State() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.snapshot()
}

// Subscribe registers an observer invoked with a fresh snapshot every
// time progress or status changes. Subscribe before calling Execute.
func (p *Pipeline) Subscribe(fn func(Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// Cancel requests a cooperative abort. The status flips to cancelled
// immediately; any in-flight stage observes the cancellation at its
// next suspension point. Completed stage results are not rolled back.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	changed := p.transition(StatusCancelled)
	snap := p.state.snapshot()
	p.mu.Unlock()

	if changed {
		p.publish(snap)
	}
}

// Execute runs the four stages in order and returns the composition
// result. On failure the run's status reflects the error class:
// cancelled for cooperative aborts, failed for everything else.
func (p *Pipeline) Execute(ctx context.Context) (*Result, error) {
	p.mu.Lock()
	if p.executed {
		p.mu.Unlock()
		return nil, ErrAlreadyExecuted
	}
	// A run cancelled before execution starts never runs a stage.
	if p.state.status.Terminal() {
		p.executed = true
		p.mu.Unlock()
		p.logger.Info("pipeline cancelled before execution")
		return nil, context.Canceled
	}
	p.executed = true

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.transition(StatusRunning)
	snap := p.state.snapshot()
	p.mu.Unlock()
	defer cancel()

	p.publish(snap)
	p.logger.InfoContext(ctx, "pipeline started", "tier", p.run.Tier)

	// Stage 1: initial analysis.
	analysis, err := runStage(ctx, p, StageAnalysis, func(ctx context.Context) (*AnalysisResult, error) {
		return p.analyzer.Analyze(ctx, p.run)
	})
	if err != nil {
		return nil, p.fail(StageAnalysis, err)
	}

	// Gate: a document that is already good is a terminal validation
	// failure, not a skip.
	if analysis.Score.Overall >= gateThreshold || !analysis.HasIssueAtLeast(SeverityMedium) {
		err := fmt.Errorf("%w: overall score %d", ErrEnhancementNotNeeded, analysis.Score.Overall)
		return nil, p.fail(StageAnalysis, err)
	}

	// Stage 2: enhancement planning.
	plan, err := runStage(ctx, p, StagePlanning, func(ctx context.Context) (*Plan, error) {
		return BuildPlan(ctx, p.run, analysis)
	})
	if err != nil {
		return nil, p.fail(StagePlanning, err)
	}

	// Stage 3: asset generation, conditionally skipped by tier and
	// settings.
	assets := &Assets{}
	if p.shouldGenerateAssets() {
		assets, err = runStage(ctx, p, StageAssets, func(ctx context.Context) (*Assets, error) {
			return p.generator.Generate(ctx, p.run, plan)
		})
		if err != nil {
			return nil, p.fail(StageAssets, err)
		}
	} else {
		p.skipStage(StageAssets)
	}

	// Stage 4: final composition. Composition output is never cached;
	// it depends on freshly generated assets.
	result, err := p.runComposition(ctx, analysis, plan, assets)
	if err != nil {
		return nil, p.fail(StageComposition, err)
	}

	p.mu.Lock()
	p.transition(StatusCompleted)
	snap = p.state.snapshot()
	p.mu.Unlock()
	p.publish(snap)

	// Only completed runs are persisted; a cancel that raced the final
	// transition leaves the snapshot cancelled.
	if p.recorder != nil && snap.Status == StatusCompleted {
		if err := p.recorder.Record(ctx, p.run, snap, result); err != nil {
			p.logger.Warn("pipeline result persistence failed", "status", snap.Status, "error", err)
		}
	}

	p.logger.InfoContext(ctx, "pipeline completed",
		"score_before", result.Improvements.Overall.Before,
		"score_after", result.Improvements.Overall.After,
	)

	return result, nil
}

// shouldGenerateAssets applies the tier and settings gates: free never
// generates, explicit opt-out never generates, and basic is rationed by
// a stable hash of the document id.
func (p *Pipeline) shouldGenerateAssets() bool {
	if !p.run.Settings.GenerateAssets {
		return false
	}

	switch p.run.Tier {
	case TierFree:
		return false
	case TierBasic:
		return admitBasicTier(p.run.DocumentID, p.basicPct)
	default:
		return p.run.Tier.Rank() > TierBasic.Rank()
	}
}

// runStage executes one cacheable stage: probe the cache first, and on
// a hit reuse the result without re-executing or re-caching. On a miss,
// execute, cache, and record timing.
func runStage[T any](ctx context.Context, p *Pipeline, stage Stage, fn func(context.Context) (*T, error)) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.beginStage(stage)

	key := cache.StageKey(string(stage), p.run.DocumentID)
	if cached, ok := p.probeCache(ctx, key); ok {
		var result T
		if err := json.Unmarshal(cached, &result); err == nil {
			p.logger.InfoContext(ctx, "stage cache hit", "stage", stage)
			p.completeStage(stage, true)
			return &result, nil
		}
		// Unparseable cache entries are treated as misses.
	}

	result, err := fn(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := p.cache.Set(ctx, key, data, p.cacheTTL); err != nil {
			p.logger.Warn("stage cache write failed", "stage", stage, "error", err)
		}
	}

	p.completeStage(stage, false)
	return result, nil
}

func (p *Pipeline) probeCache(ctx context.Context, key string) ([]byte, bool) {
	data, err := p.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			p.logger.Warn("stage cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (p *Pipeline) runComposition(ctx context.Context, analysis *AnalysisResult, plan *Plan, assets *Assets) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.beginStage(StageComposition)

	result, err := p.composer.Compose(ctx, p.run, analysis, plan, assets)
	if err != nil {
		return nil, err
	}

	p.completeStage(StageComposition, false)

	// Attach the run's stage timing breakdown.
	snap := p.State()
	result.StageTimings = make(map[Stage]time.Duration, len(snap.Stages))
	for _, r := range snap.Stages {
		result.StageTimings[r.Stage] = r.Duration()
	}

	return result, nil
}

func (p *Pipeline) beginStage(stage Stage) {
	p.mu.Lock()
	p.state.stage = stage
	r := p.state.records[stage]
	r.Status = StageRunning
	r.StartedAt = time.Now()
	p.state.updatedAt = time.Now()
	snap := p.state.snapshot()
	p.mu.Unlock()

	p.publish(snap)
}

func (p *Pipeline) completeStage(stage Stage, cached bool) {
	p.mu.Lock()
	r := p.state.records[stage]
	r.Status = StageCompleted
	r.Cached = cached
	r.CompletedAt = time.Now()
	p.state.recomputeProgress()
	p.state.updatedAt = time.Now()
	snap := p.state.snapshot()
	p.mu.Unlock()

	p.publish(snap)
}

func (p *Pipeline) skipStage(stage Stage) {
	p.mu.Lock()
	r := p.state.records[stage]
	r.Status = StageSkipped
	p.state.recomputeProgress()
	p.state.updatedAt = time.Now()
	snap := p.state.snapshot()
	p.mu.Unlock()

	p.logger.Info("stage skipped", "stage", stage, "tier", p.run.Tier)
	p.publish(snap)
}

// fail records the stage error and flips the run to failed, or to
// cancelled when the error stems from a cooperative abort. Returns the
// error to re-raise to the caller.
func (p *Pipeline) fail(stage Stage, err error) error {
	cancelled := errors.Is(err, context.Canceled)

	p.mu.Lock()
	stageErr := newStageError(stage, err)
	p.state.errors = append(p.state.errors, *stageErr)
	r := p.state.records[stage]
	if r.Status == StageRunning {
		r.Status = StageFailed
		r.CompletedAt = time.Now()
		r.Error = err.Error()
	}

	if cancelled {
		p.transition(StatusCancelled)
	} else {
		p.transition(StatusFailed)
	}
	snap := p.state.snapshot()
	p.mu.Unlock()

	p.publish(snap)

	if cancelled {
		p.logger.Info("pipeline cancelled", "stage", stage)
		return err
	}

	p.logger.Error("pipeline failed", "stage", stage, "error", err)
	return stageErr
}

// transition moves the run status forward. Terminal statuses are
// sticky: once cancelled, failed, or completed, the status never
// changes again. Callers must hold the mutex. Reports whether the
// status changed.
func (p *Pipeline) transition(next Status) bool {
	if p.state.status.Terminal() || p.state.status == next {
		return false
	}
	p.state.status = next
	p.state.updatedAt = time.Now()
	return true
}

func (p *Pipeline) publish(snap Snapshot) {
	p.mu.Lock()
	observers := make([]func(Snapshot), len(p.observers))
	copy(observers, p.observers)
	p.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}
