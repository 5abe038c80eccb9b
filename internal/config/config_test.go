package config

import (
	"strings"
	"testing"
	"time"
)

func TestRedisConfigFinalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var c RedisConfig
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.Addr != "localhost:6379" {
			t.Errorf("Addr = %q, want localhost:6379", c.Addr)
		}
		if c.DB != 0 {
			t.Errorf("DB = %d, want 0", c.DB)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv(EnvRedisAddr, "cache.internal:6380")
		t.Setenv(EnvRedisDB, "3")

		c := RedisConfig{Addr: "from-toml:6379"}
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.Addr != "cache.internal:6380" {
			t.Errorf("Addr = %q, want env value", c.Addr)
		}
		if c.DB != 3 {
			t.Errorf("DB = %d, want 3", c.DB)
		}
	})

	t.Run("invalid db rejected", func(t *testing.T) {
		c := RedisConfig{Addr: "localhost:6379", DB: 99}
		if err := c.Finalize(); err == nil {
			t.Fatal("Finalize() expected error for db 99")
		}
	})
}

func TestAgentConfigFinalize(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		var c AgentConfig
		err := c.Finalize()
		if err == nil {
			t.Fatal("Finalize() expected error without API key")
		}
		if !strings.Contains(err.Error(), EnvAgentAPIKey) {
			t.Errorf("error = %v, want mention of %s", err, EnvAgentAPIKey)
		}
	})

	t.Run("defaults and key from env", func(t *testing.T) {
		t.Setenv(EnvAgentAPIKey, "test-key")

		var c AgentConfig
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.APIKey() != "test-key" {
			t.Errorf("APIKey() = %q, want test-key", c.APIKey())
		}
		if c.VisionModel == "" || c.ImageModel == "" || c.ImageModelPro == "" {
			t.Errorf("model defaults missing: %+v", c)
		}
	})

	t.Run("model overrides", func(t *testing.T) {
		t.Setenv(EnvAgentAPIKey, "test-key")
		t.Setenv(EnvAgentVisionModel, "gemini-experimental")

		var c AgentConfig
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.VisionModel != "gemini-experimental" {
			t.Errorf("VisionModel = %q, want env override", c.VisionModel)
		}
	})
}

func TestPipelineConfigFinalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var c PipelineConfig
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.CacheTTLDuration() != time.Hour {
			t.Errorf("CacheTTLDuration() = %v, want 1h", c.CacheTTLDuration())
		}
		if c.BasicAssetRatio != 50 {
			t.Errorf("BasicAssetRatio = %d, want 50", c.BasicAssetRatio)
		}
	})

	t.Run("invalid ratio rejected", func(t *testing.T) {
		c := PipelineConfig{CacheTTL: "1h", BasicAssetRatio: 150}
		if err := c.Finalize(); err == nil {
			t.Fatal("Finalize() expected error for ratio 150")
		}
	})

	t.Run("invalid ttl rejected", func(t *testing.T) {
		c := PipelineConfig{CacheTTL: "soon"}
		if err := c.Finalize(); err == nil {
			t.Fatal("Finalize() expected error for bad ttl")
		}
	})
}

func TestWorkerConfigFinalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var c WorkerConfig
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.Queue != "burnish:jobs" {
			t.Errorf("Queue = %q, want burnish:jobs", c.Queue)
		}
		if c.Concurrency != 2 {
			t.Errorf("Concurrency = %d, want 2", c.Concurrency)
		}
		if c.PollTimeoutDuration() != 5*time.Second {
			t.Errorf("PollTimeoutDuration() = %v, want 5s", c.PollTimeoutDuration())
		}
	})

	t.Run("invalid concurrency rejected", func(t *testing.T) {
		c := WorkerConfig{Queue: "q", Concurrency: -1, PollTimeout: "5s"}
		if err := c.Finalize(); err == nil {
			t.Fatal("Finalize() expected error for negative concurrency")
		}
	})
}

func TestConfigMerge(t *testing.T) {
	base := &Config{
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
		Redis:           RedisConfig{Addr: "localhost:6379"},
		Worker:          WorkerConfig{Queue: "burnish:jobs"},
	}

	overlay := &Config{
		ShutdownTimeout: "10s",
		Redis:           RedisConfig{Addr: "cache.prod:6379", DB: 1},
	}

	base.Merge(overlay)

	if base.ShutdownTimeout != "10s" {
		t.Errorf("ShutdownTimeout = %q, want 10s", base.ShutdownTimeout)
	}
	if base.Version != "0.1.0" {
		t.Errorf("Version = %q, want untouched 0.1.0", base.Version)
	}
	if base.Redis.Addr != "cache.prod:6379" || base.Redis.DB != 1 {
		t.Errorf("Redis = %+v, want overlay values", base.Redis)
	}
	if base.Worker.Queue != "burnish:jobs" {
		t.Errorf("Worker.Queue = %q, want untouched", base.Worker.Queue)
	}
}
