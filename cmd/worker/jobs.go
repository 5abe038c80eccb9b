package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/burnishapp/burnish/internal/assets"
	"github.com/burnishapp/burnish/internal/compose"
	"github.com/burnishapp/burnish/internal/pipeline"
	"github.com/burnishapp/burnish/internal/vision"
)

// Job is one enhancement request pulled from the redis queue.
type Job struct {
	DocumentID uuid.UUID         `json:"document_id"`
	OwnerID    uuid.UUID         `json:"owner_id"`
	Tier       pipeline.Tier     `json:"tier"`
	SourceKey  string            `json:"source_key"`
	FileKind   string            `json:"file_kind"`
	Settings   pipeline.Settings `json:"settings"`
}

// consume blocks on the job queue until the context is cancelled.
func (w *Worker) consume(ctx context.Context) {
	client := w.infra.Cache.Client()
	timeout := w.cfg.Worker.PollTimeoutDuration()

	for {
		if ctx.Err() != nil {
			return
		}

		entry, err := client.BLPop(ctx, timeout, w.cfg.Worker.Queue).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("queue poll failed", "error", err)
			time.Sleep(timeout)
			continue
		}

		// BLPop returns [key, value].
		if len(entry) < 2 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(entry[1]), &job); err != nil {
			w.logger.Warn("malformed job dropped", "error", err)
			continue
		}

		w.run(ctx, job)
	}
}

// run executes one enhancement pipeline for a job.
func (w *Worker) run(ctx context.Context, job Job) {
	start := time.Now()
	logger := w.logger.With("document", job.DocumentID)
	logger.Info("job received", "tier", job.Tier, "kind", job.FileKind)

	run := pipeline.Context{
		DocumentID: job.DocumentID,
		OwnerID:    job.OwnerID,
		Tier:       job.Tier,
		SourceKey:  job.SourceKey,
		FileKind:   job.FileKind,
		StartedAt:  start,
		Settings:   job.Settings,
	}

	p := pipeline.New(run, pipeline.Config{
		Analyzer:           vision.NewAnalyzer(w.infra.GenAI, w.infra.Storage, w.cfg.Agent.VisionModel, w.cfg.Pipeline.MaxSourceSizeBytes(), w.infra.Logger),
		Generator:          assets.NewGenerator(w.infra.GenAI, w.infra.Storage, w.imageModel(job.Tier), w.infra.Logger),
		Composer:           compose.NewComposer(w.infra.Storage, w.infra.Logger),
		Recorder:           w.results,
		Cache:              w.infra.Cache,
		Logger:             w.infra.Logger,
		CacheTTL:           w.cfg.Pipeline.CacheTTLDuration(),
		BasicAssetRatioPct: w.cfg.Pipeline.BasicAssetRatio,
	})

	result, err := p.Execute(ctx)
	switch {
	case err == nil:
		logger.Info("job completed",
			"elapsed", time.Since(start),
			"artifact", result.EnhancedURL,
		)
	case errors.Is(err, pipeline.ErrEnhancementNotNeeded):
		logger.Info("document already polished", "elapsed", time.Since(start))
	case errors.Is(err, context.Canceled):
		logger.Info("job cancelled", "elapsed", time.Since(start))
	default:
		logger.Error("job failed", "error", err, "elapsed", time.Since(start))
	}
}

func (w *Worker) imageModel(tier pipeline.Tier) string {
	if tier == pipeline.TierPremium {
		return w.cfg.Agent.ImageModelPro
	}
	return w.cfg.Agent.ImageModel
}
