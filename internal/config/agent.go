package config

import (
	"fmt"
	"os"
)

const (
	EnvAgentAPIKey        = "BURNISH_AGENT_API_KEY"
	EnvAgentVisionModel   = "BURNISH_AGENT_VISION_MODEL"
	EnvAgentImageModel    = "BURNISH_AGENT_IMAGE_MODEL"
	EnvAgentImageModelPro = "BURNISH_AGENT_IMAGE_MODEL_PRO"
)

// AgentConfig holds Gemini API access and model selection. The API key
// is never read from TOML; it comes from the environment only.
type AgentConfig struct {
	VisionModel   string `toml:"vision_model"`
	ImageModel    string `toml:"image_model"`
	ImageModelPro string `toml:"image_model_pro"`

	apiKey string
}

// APIKey returns the Gemini API key loaded from the environment.
func (c *AgentConfig) APIKey() string {
	return c.apiKey
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AgentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AgentConfig) Merge(overlay *AgentConfig) {
	if overlay.VisionModel != "" {
		c.VisionModel = overlay.VisionModel
	}
	if overlay.ImageModel != "" {
		c.ImageModel = overlay.ImageModel
	}
	if overlay.ImageModelPro != "" {
		c.ImageModelPro = overlay.ImageModelPro
	}
}

func (c *AgentConfig) loadDefaults() {
	if c.VisionModel == "" {
		c.VisionModel = "gemini-2.5-flash"
	}
	if c.ImageModel == "" {
		c.ImageModel = "gemini-2.5-flash-image-preview"
	}
	if c.ImageModelPro == "" {
		c.ImageModelPro = "gemini-3-pro-image-preview"
	}
}

func (c *AgentConfig) loadEnv() {
	if v := os.Getenv(EnvAgentAPIKey); v != "" {
		c.apiKey = v
	}
	if v := os.Getenv(EnvAgentVisionModel); v != "" {
		c.VisionModel = v
	}
	if v := os.Getenv(EnvAgentImageModel); v != "" {
		c.ImageModel = v
	}
	if v := os.Getenv(EnvAgentImageModelPro); v != "" {
		c.ImageModelPro = v
	}
}

func (c *AgentConfig) validate() error {
	if c.apiKey == "" {
		return fmt.Errorf("%s required", EnvAgentAPIKey)
	}
	return nil
}
