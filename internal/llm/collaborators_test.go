// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package llm

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	collabs, err := New(&cfg, zerolog.Nop())
	if err != nil || collabs != nil {
		t.Fatalf("New() without key = %v, %v, want nil, nil", collabs, err)
	}
	if err := collabs.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}

	cfg.APIKey = "key"
	cfg.CacheInMemory = true
	collabs, err = New(&cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = collabs.Close() }() //nolint:errcheck // test cleanup
	if collabs.Expander == nil || collabs.Generator == nil || collabs.Enhancer == nil {
		t.Errorf("New() = %+v", collabs)
	}

	cfg.Breaker.FailureRatio = 0
	if _, err := New(&cfg, zerolog.Nop()); err == nil {
		t.Error("New() error = nil for invalid config")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "disabled_skips_checks",
			mutate: func(c *Config) {
				c.APIKey = ""
				c.BaseURL = ""
			},
		},
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no_base_url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: "llm.base_url"},
		{name: "no_model", mutate: func(c *Config) { c.GenerationModel = "" }, wantErr: "models"},
		{name: "zero_timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "llm.request_timeout"},
		{name: "zero_burst", mutate: func(c *Config) { c.RateBurst = 0 }, wantErr: "llm.rate_burst"},
		{name: "ratio", mutate: func(c *Config) { c.Breaker.FailureRatio = 1.5 }, wantErr: "failure_ratio"},
		{name: "cache_dir", mutate: func(c *Config) { c.CacheDir = "" }, wantErr: "llm.cache_dir"},
		{name: "confidence", mutate: func(c *Config) { c.MinConfidence = 2 }, wantErr: "llm.min_confidence"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.APIKey = "key"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
