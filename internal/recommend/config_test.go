// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/tomtom215/careerpath/internal/recommend/reranking"
)

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
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
			name:    "zero_top_n",
			mutate:  func(c *Config) { c.Ranking.DefaultTopN = 0 },
			wantErr: "ranking.default_top_n",
		},
		{
			name:    "max_below_default",
			mutate:  func(c *Config) { c.Ranking.MaxTopN = 2 },
			wantErr: "ranking.max_top_n",
		},
		{
			name:    "threshold_out_of_range",
			mutate:  func(c *Config) { c.Ranking.AlternativeThreshold = 1.5 },
			wantErr: "ranking.alternative_threshold",
		},
		{
			name:    "inverted_range",
			mutate:  func(c *Config) { c.Normalization.LearnedRange = reranking.Range{Min: 0.9, Max: 0.4} },
			wantErr: "normalization.learned_range",
		},
		{
			name:    "zero_fuzzy",
			mutate:  func(c *Config) { c.Matching.MinFuzzySimilarity = 0 },
			wantErr: "matching.min_fuzzy_similarity",
		},
		{
			name:    "no_deny_terms",
			mutate:  func(c *Config) { c.Guardrail.DenyTerms = nil },
			wantErr: "guardrail.deny_terms",
		},
		{
			name:    "narrowing_spreads",
			mutate:  func(c *Config) { c.Guardrail.Spreads.VeryLow = 0.01 },
			wantErr: "guardrail.spreads",
		},
		{
			name:    "minimum_above_max",
			mutate:  func(c *Config) { c.Guardrail.MinRecommendations = 30 },
			wantErr: "guardrail.min_recommendations",
		},
		{
			name:    "zero_timeout",
			mutate:  func(c *Config) { c.Collaborators.EnhanceTimeout = 0 },
			wantErr: "timeouts",
		},
		{
			name:    "zero_overlap_importance",
			mutate:  func(c *Config) { c.Overlap.MinImportance = 0 },
			wantErr: "overlap.min_importance",
		},
		{
			name:    "zero_concurrency",
			mutate:  func(c *Config) { c.Collaborators.MaxConcurrentEnhance = 0 },
			wantErr: "max_concurrent_enhance",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	orig := DefaultConfig()
	clone := orig.Clone()

	clone.Ranking.GenericCategories[0] = "changed"
	clone.Matching.Keywords["python"][0] = "changed"
	clone.Guardrail.DenyTerms = append(clone.Guardrail.DenyTerms[:0], "changed")
	clone.Supplement.SpecializedKeywords["tech"] = nil

	if orig.Ranking.GenericCategories[0] == "changed" {
		t.Error("Clone() shares GenericCategories")
	}
	if orig.Matching.Keywords["python"][0] == "changed" {
		t.Error("Clone() shares Keywords")
	}
	if orig.Guardrail.DenyTerms[0] == "changed" {
		t.Error("Clone() shares DenyTerms")
	}
	if orig.Supplement.SpecializedKeywords["tech"] == nil {
		t.Error("Clone() shares SpecializedKeywords")
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded struct {
		Collaborators struct {
			EnhanceTimeout string `json:"enhance_timeout"`
		} `json:"collaborators"`
		Ranking struct {
			DefaultTopN int `json:"default_top_n"`
		} `json:"ranking"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Collaborators.EnhanceTimeout != "3s" {
		t.Errorf("enhance_timeout = %q, want 3s", decoded.Collaborators.EnhanceTimeout)
	}
	if decoded.Ranking.DefaultTopN != 5 {
		t.Errorf("default_top_n = %d, want 5", decoded.Ranking.DefaultTopN)
	}
}
