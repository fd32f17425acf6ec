// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/llm"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/algorithms"
)

const testCatalogPath = "../../internal/catalog/testdata/catalog.json"

func testConfig(catalogPath, modelPath string) *config.Config {
	return &config.Config{
		Catalog:   config.CatalogConfig{Path: catalogPath},
		Model:     config.ModelConfig{Path: modelPath},
		Recommend: *recommend.DefaultConfig(),
		LLM:       llm.DefaultConfig(),
	}
}

func writeModel(t *testing.T, dimension int) string {
	t.Helper()
	weights := make([]string, 3*dimension)
	for i := range weights {
		weights[i] = "0.01"
	}
	body := `{"version":"test","dimension":` + strconv.Itoa(dimension) + `,"weights":[` + strings.Join(weights, ",") + `],"bias":0}`
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

func TestInitEngine(t *testing.T) {
	t.Parallel()

	c, err := initEngine(testConfig(testCatalogPath, ""), zerolog.Nop())
	if err != nil {
		t.Fatalf("initEngine() error = %v", err)
	}
	defer func() { _ = c.Close() }() //nolint:errcheck // test cleanup

	if c.Collaborators != nil {
		t.Error("collaborators enabled without an API key")
	}
	if c.Engine.Store().Len() != 10 {
		t.Errorf("occupations = %d, want 10", c.Engine.Store().Len())
	}
	if c.Engine.ScorerName() != algorithms.NameSimilarity {
		t.Errorf("scorer = %q, want %q", c.Engine.ScorerName(), algorithms.NameSimilarity)
	}
}

func TestInitEngine_MissingCatalog(t *testing.T) {
	t.Parallel()

	if _, err := initEngine(testConfig(filepath.Join(t.TempDir(), "none.json"), ""), zerolog.Nop()); err == nil {
		t.Fatal("initEngine() error = nil, want catalog error")
	}
}

func TestInitEngine_Model(t *testing.T) {
	t.Parallel()

	probe, err := initEngine(testConfig(testCatalogPath, ""), zerolog.Nop())
	if err != nil {
		t.Fatalf("initEngine() error = %v", err)
	}
	dimension := probe.Engine.Store().Schema().Len()

	tests := []struct {
		name       string
		modelPath  string
		wantScorer string
	}{
		{"matching_model", writeModel(t, dimension), algorithms.NameLearned},
		{"dimension_mismatch", writeModel(t, dimension+1), algorithms.NameSimilarity},
		{"missing_file", filepath.Join(t.TempDir(), "absent.json"), algorithms.NameSimilarity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := initEngine(testConfig(testCatalogPath, tt.modelPath), zerolog.Nop())
			if err != nil {
				t.Fatalf("initEngine() error = %v", err)
			}
			if got := c.Engine.ScorerName(); got != tt.wantScorer {
				t.Errorf("ScorerName() = %q, want %q", got, tt.wantScorer)
			}
		})
	}
}
