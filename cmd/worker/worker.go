package main

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/burnishapp/burnish/internal/config"
	"github.com/burnishapp/burnish/internal/infrastructure"
	"github.com/burnishapp/burnish/internal/results"
)

// Worker consumes enhancement jobs from the redis queue and runs one
// pipeline per job.
type Worker struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	results results.System
	logger  *slog.Logger
	group   *errgroup.Group
}

// NewWorker assembles infrastructure and the result repository.
func NewWorker(ctx context.Context, cfg *config.Config) (*Worker, error) {
	infra, err := infrastructure.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repo := results.New(infra.Database.Connection(), infra.Logger, cfg.Pagination)

	infra.Logger.Info(
		"worker initialized",
		"queue", cfg.Worker.Queue,
		"concurrency", cfg.Worker.Concurrency,
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Worker{
		cfg:     cfg,
		infra:   infra,
		results: repo,
		logger:  infra.Logger.With("system", "worker"),
	}, nil
}

// Start brings up infrastructure and launches the consumer loops.
func (w *Worker) Start() error {
	if err := w.infra.Start(); err != nil {
		return err
	}

	go func() {
		w.infra.Lifecycle.WaitForStartup()
		w.logger.Info("all subsystems ready")
	}()

	ctx := w.infra.Lifecycle.Context()
	w.group, _ = errgroup.WithContext(ctx)
	for i := 0; i < w.cfg.Worker.Concurrency; i++ {
		w.group.Go(func() error {
			w.consume(ctx)
			return nil
		})
	}

	return nil
}

// Shutdown stops the consumer loops and releases infrastructure.
func (w *Worker) Shutdown(timeout time.Duration) error {
	w.logger.Info("initiating shutdown")

	err := w.infra.Lifecycle.Shutdown(timeout)
	if w.group != nil {
		w.group.Wait()
	}
	w.logger.Info("worker stopped")
	return err
}
