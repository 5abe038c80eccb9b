package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvWorkerQueue       = "BURNISH_WORKER_QUEUE"
	EnvWorkerConcurrency = "BURNISH_WORKER_CONCURRENCY"
	EnvWorkerPollTimeout = "BURNISH_WORKER_POLL_TIMEOUT"
)

// WorkerConfig holds the job-queue consumption parameters.
type WorkerConfig struct {
	Queue       string `toml:"queue"`
	Concurrency int    `toml:"concurrency"`
	PollTimeout string `toml:"poll_timeout"`
}

// PollTimeoutDuration returns PollTimeout as a time.Duration.
func (c *WorkerConfig) PollTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PollTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkerConfig) Merge(overlay *WorkerConfig) {
	if overlay.Queue != "" {
		c.Queue = overlay.Queue
	}
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
	if overlay.PollTimeout != "" {
		c.PollTimeout = overlay.PollTimeout
	}
}

func (c *WorkerConfig) loadDefaults() {
	if c.Queue == "" {
		c.Queue = "burnish:jobs"
	}
	if c.Concurrency == 0 {
		c.Concurrency = 2
	}
	if c.PollTimeout == "" {
		c.PollTimeout = "5s"
	}
}

func (c *WorkerConfig) loadEnv() {
	if v := os.Getenv(EnvWorkerQueue); v != "" {
		c.Queue = v
	}
	if v := os.Getenv(EnvWorkerConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
	if v := os.Getenv(EnvWorkerPollTimeout); v != "" {
		c.PollTimeout = v
	}
}

func (c *WorkerConfig) validate() error {
	if c.Concurrency < 1 || c.Concurrency > 64 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	if _, err := time.ParseDuration(c.PollTimeout); err != nil {
		return fmt.Errorf("invalid poll_timeout: %w", err)
	}
	return nil
}
