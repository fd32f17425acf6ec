// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package llm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds the chat completion client and collaborator settings.
type Config struct {
	// BaseURL is the OpenAI-compatible API root, without /chat/completions.
	BaseURL string `koanf:"base_url"`

	// APIKey enables the collaborators. Empty means none are built.
	APIKey string `koanf:"api_key"`

	ExpansionModel   string `koanf:"expansion_model"`
	GenerationModel  string `koanf:"generation_model"`
	EnhancementModel string `koanf:"enhancement_model"`

	// RequestTimeout bounds a single HTTP call.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// RateLimit is the sustained outbound request rate per second.
	// Zero or negative disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	Breaker BreakerConfig `koanf:"breaker"`

	// CacheDir is the badger directory for skill expansions.
	CacheDir string `koanf:"cache_dir"`

	// CacheInMemory keeps the expansion cache in memory only.
	CacheInMemory bool `koanf:"cache_in_memory"`

	// CacheTTL is how long one expansion stays cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// MinConfidence drops expanded dimensions below this confidence.
	MinConfidence float64 `koanf:"min_confidence"`
}

// BreakerConfig configures the circuit breaker in front of the API.
type BreakerConfig struct {
	// MaxRequests allowed through in the half-open state.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval after which closed-state counts reset.
	Interval time.Duration `koanf:"interval"`

	// Timeout before an open breaker moves to half-open.
	Timeout time.Duration `koanf:"timeout"`

	// MinRequests before the failure ratio is considered.
	MinRequests uint32 `koanf:"min_requests"`

	// FailureRatio at or above which the breaker opens.
	FailureRatio float64 `koanf:"failure_ratio"`
}

// DefaultConfig returns the collaborator defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:          "https://api.openai.com/v1",
		ExpansionModel:   "gpt-3.5-turbo",
		GenerationModel:  "gpt-4o",
		EnhancementModel: "gpt-4o-mini",
		RequestTimeout:   10 * time.Second,
		RateLimit:        5,
		RateBurst:        10,
		Breaker: BreakerConfig{
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      2 * time.Minute,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		CacheDir:      "/data/llm-cache",
		CacheTTL:      7 * 24 * time.Hour,
		MinConfidence: 0.3,
	}
}

// Enabled reports whether an API key is configured.
func (c *Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Validate checks the settings used when the collaborators are enabled.
func (c *Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.BaseURL == "" {
		return errors.New("llm.base_url is required when llm.api_key is set")
	}
	if c.ExpansionModel == "" || c.GenerationModel == "" || c.EnhancementModel == "" {
		return errors.New("llm models must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("llm.request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("llm.rate_burst must be at least 1, got %d", c.RateBurst)
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("llm.breaker.failure_ratio must be in (0, 1], got %f", c.Breaker.FailureRatio)
	}
	if c.Breaker.MaxRequests == 0 {
		return errors.New("llm.breaker.max_requests must be at least 1")
	}
	if !c.CacheInMemory && c.CacheDir == "" {
		return errors.New("llm.cache_dir is required unless llm.cache_in_memory is set")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("llm.cache_ttl must be positive, got %s", c.CacheTTL)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("llm.min_confidence must be in [0, 1], got %f", c.MinConfidence)
	}
	return nil
}
