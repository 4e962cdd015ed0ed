package gemini

import (
	"errors"
	"time"

	"github.com/knxxxn/UpMe/internal/profile"
)

// Generation parameters are fixed service-side, not caller-controlled.
const (
	defaultTemperature     = 0.8
	defaultMaxOutputTokens = 1024
)

// Config represents Gemini gateway configuration.
type Config struct {
	APIKey  string
	Model   string // gemini-2.0-flash
	BaseURL string // https://generativelanguage.googleapis.com
	Timeout time.Duration
}

// NewConfigFromProfile creates gateway config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	return &Config{
		APIKey:  p.GeminiAPIKey,
		Model:   p.GeminiModel,
		BaseURL: p.GeminiBaseURL,
		Timeout: time.Duration(p.GeminiTimeoutSeconds) * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("gemini API key is required")
	}
	if c.Model == "" {
		return errors.New("gemini model is required")
	}
	if c.BaseURL == "" {
		return errors.New("gemini base URL is required")
	}
	return nil
}
