// Package config loads the burnish service configuration: a TOML base
// file with an optional per-environment overlay, finalized through the
// three-phase pattern (defaults, environment overrides, validation).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/burnishapp/burnish/pkg/database"
	"github.com/burnishapp/burnish/pkg/pagination"
	"github.com/burnishapp/burnish/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvBurnishEnv             = "BURNISH_ENV"
	EnvBurnishShutdownTimeout = "BURNISH_SHUTDOWN_TIMEOUT"
	EnvBurnishVersion         = "BURNISH_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "BURNISH_DB_HOST",
	Port:            "BURNISH_DB_PORT",
	Name:            "BURNISH_DB_NAME",
	User:            "BURNISH_DB_USER",
	Password:        "BURNISH_DB_PASSWORD",
	SSLMode:         "BURNISH_DB_SSL_MODE",
	MaxOpenConns:    "BURNISH_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "BURNISH_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "BURNISH_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "BURNISH_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "BURNISH_STORAGE_CONTAINER_NAME",
	ConnectionString: "BURNISH_STORAGE_CONNECTION_STRING",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "BURNISH_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "BURNISH_PAGINATION_MAX_PAGE_SIZE",
}

// Config is the root configuration for the burnish service.
type Config struct {
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	Redis           RedisConfig       `toml:"redis"`
	Agent           AgentConfig       `toml:"agent"`
	Pipeline        PipelineConfig    `toml:"pipeline"`
	Worker          WorkerConfig      `toml:"worker"`
	Pagination      pagination.Config `toml:"pagination"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the BURNISH_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBurnishEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Redis.Merge(&overlay.Redis)
	c.Agent.Merge(&overlay.Agent)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.Worker.Merge(&overlay.Worker)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Redis.Finalize(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if err := c.Agent.Finalize(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Pipeline.Finalize(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Worker.Finalize(); err != nil {
		return fmt.Errorf("worker: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBurnishShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBurnishVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvBurnishEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
