// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/catalog"
	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/llm"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/algorithms"
)

// EngineComponents holds the engine and its optional collaborators.
type EngineComponents struct {
	Engine        *recommend.Engine
	Collaborators *llm.Collaborators
}

// Close releases collaborator resources.
func (c *EngineComponents) Close() error {
	return c.Collaborators.Close()
}

// initEngine loads the catalog and builds the engine. A missing or invalid
// model file is not fatal: the engine serves with the similarity baseline.
// Collaborators are attached only when an API key is configured.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(cfg *config.Config, logger zerolog.Logger) (*EngineComponents, error) {
	store, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	schema := store.Schema()
	metrics.SetCatalog(store.Version(), store.Len(), schema.Len())
	logger.Info().
		Str("path", cfg.Catalog.Path).
		Str("version", store.Version()).
		Int("occupations", store.Len()).
		Int("dimensions", schema.Len()).
		Msg("catalog loaded")

	engine, err := recommend.NewEngine(store, &cfg.Recommend, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.SetRecorder(metrics.EngineRecorder{})

	if cfg.Model.Path != "" {
		registerModel(engine, cfg.Model.Path, schema.Len(), logger)
	} else {
		logger.Info().Msg("no model configured (MODEL_PATH empty), using similarity baseline")
	}

	collab, err := llm.New(&cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("create language model collaborators: %w", err)
	}
	if collab != nil {
		collab.Attach(engine)
		logger.Info().
			Str("base_url", cfg.LLM.BaseURL).
			Str("api_key", logging.SanitizeToken(cfg.LLM.APIKey)).
			Str("expansion_model", cfg.LLM.ExpansionModel).
			Msg("language model collaborators attached")
	} else {
		logger.Info().Msg("language model collaborators disabled (LLM_API_KEY empty)")
	}

	return &EngineComponents{Engine: engine, Collaborators: collab}, nil
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func registerModel(engine *recommend.Engine, path string, dimension int, logger zerolog.Logger) {
	model, err := algorithms.LoadLogisticModel(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to load model, using similarity baseline")
		return
	}
	if model.Dimension() != dimension {
		logger.Warn().
			Int("model_dimension", model.Dimension()).
			Int("catalog_dimension", dimension).
			Msg("model does not match catalog schema, using similarity baseline")
		return
	}
	engine.SetLearnedScorer(algorithms.NewLearnedScorer(model, dimension))
	logger.Info().Str("path", path).Str("model_version", model.Version()).Msg("learned model loaded")
}
