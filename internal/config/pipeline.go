package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/burnishapp/burnish/pkg/formatting"
)

const (
	EnvPipelineCacheTTL        = "BURNISH_PIPELINE_CACHE_TTL"
	EnvPipelineBasicAssetRatio = "BURNISH_PIPELINE_BASIC_ASSET_RATIO"
	EnvPipelineMaxSourceSize   = "BURNISH_PIPELINE_MAX_SOURCE_SIZE"
)

// PipelineConfig holds tuning knobs for enhancement runs.
type PipelineConfig struct {
	CacheTTL        string `toml:"cache_ttl"`
	BasicAssetRatio int    `toml:"basic_asset_ratio"`
	MaxSourceSize   string `toml:"max_source_size"`
}

// CacheTTLDuration returns CacheTTL as a time.Duration.
func (c *PipelineConfig) CacheTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.CacheTTL)
	return d
}

// MaxSourceSizeBytes returns MaxSourceSize as a byte count.
func (c *PipelineConfig) MaxSourceSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxSourceSize)
	if err != nil {
		return 20 * 1024 * 1024 // 20MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.CacheTTL != "" {
		c.CacheTTL = overlay.CacheTTL
	}
	if overlay.BasicAssetRatio != 0 {
		c.BasicAssetRatio = overlay.BasicAssetRatio
	}
	if overlay.MaxSourceSize != "" {
		c.MaxSourceSize = overlay.MaxSourceSize
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.CacheTTL == "" {
		c.CacheTTL = "1h"
	}
	if c.BasicAssetRatio == 0 {
		c.BasicAssetRatio = 50
	}
	if c.MaxSourceSize == "" {
		c.MaxSourceSize = "20MB"
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineCacheTTL); v != "" {
		c.CacheTTL = v
	}
	if v := os.Getenv(EnvPipelineBasicAssetRatio); v != "" {
		if pct, err := strconv.Atoi(v); err == nil {
			c.BasicAssetRatio = pct
		}
	}
	if v := os.Getenv(EnvPipelineMaxSourceSize); v != "" {
		c.MaxSourceSize = v
	}
}

func (c *PipelineConfig) validate() error {
	if _, err := time.ParseDuration(c.CacheTTL); err != nil {
		return fmt.Errorf("invalid cache_ttl: %w", err)
	}
	if c.BasicAssetRatio < 0 || c.BasicAssetRatio > 100 {
		return fmt.Errorf("invalid basic_asset_ratio: %d", c.BasicAssetRatio)
	}
	if _, err := formatting.ParseBytes(c.MaxSourceSize); err != nil {
		return fmt.Errorf("invalid max_source_size: %w", err)
	}
	return nil
}
