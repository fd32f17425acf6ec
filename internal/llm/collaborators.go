// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package llm

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/recommend"
)

// Collaborators bundles the three engine collaborators over one client.
type Collaborators struct {
	Client    *Client
	Expander  *SkillExpander
	Generator *CareerGenerator
	Enhancer  *NarrativeEnhancer

	cache *Cache
}

// New builds the collaborators. It returns nil, nil when no API key is
// configured.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *Config, logger zerolog.Logger) (*Collaborators, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid llm config: %w", err)
	}

	cache, err := OpenCache(cfg.CacheDir, cfg.CacheInMemory, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}

	client := NewClient(cfg, logger)
	return &Collaborators{
		Client:    client,
		Expander:  NewSkillExpander(client, cache, cfg, logger),
		Generator: NewCareerGenerator(client, cfg, logger),
		Enhancer:  NewNarrativeEnhancer(client, cfg, logger),
		cache:     cache,
	}, nil
}

// Attach installs every collaborator on the engine.
func (c *Collaborators) Attach(e *recommend.Engine) {
	e.SetSkillExpander(c.Expander)
	e.SetCareerGenerator(c.Generator)
	e.SetNarrativeEnhancer(c.Enhancer)
}

// Cache returns the expansion cache.
func (c *Collaborators) Cache() *Cache {
	return c.cache
}

// Close releases the expansion cache.
func (c *Collaborators) Close() error {
	if c == nil || c.cache == nil {
		return nil
	}
	return c.cache.Close()
}
