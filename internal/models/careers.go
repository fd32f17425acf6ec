// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/catalog"
	"github.com/tomtom215/careerpath/internal/recommend"
)

// FeatureResponse is the encoded form of a profile feature vector.
type FeatureResponse struct {
	Dimensions []catalog.Dimension `json:"dimensions"`
	Values     []float64           `json:"values"`
	Unmapped   []string            `json:"unmapped"`
	Ignored    []string            `json:"ignored"`
	Expanded   []string            `json:"expanded,omitempty"`
	Length     int                 `json:"length"`
}

// NewFeatureResponse reports a feature vector alongside the dimensions it is aligned to.
func NewFeatureResponse(fv *recommend.FeatureVector) FeatureResponse {
	return FeatureResponse{
		Dimensions: fv.Schema().Dimensions(),
		Values:     fv.Values,
		Unmapped:   nonNil(fv.Unmapped),
		Ignored:    nonNil(fv.Ignored),
		Expanded:   fv.Expanded,
		Length:     fv.Len(),
	}
}

// ExplainRequest is the body of an explain call.
type ExplainRequest struct {
	Profile      json.RawMessage `json:"profile" validate:"required"`
	OccupationID string          `json:"occupation_id" validate:"required,max=128"`
}

// RankQuery holds the query parameters of a recommendations call.
type RankQuery struct {
	TopN          int  `json:"top_n" validate:"gte=0,lte=100"`
	AlternativesN *int `json:"alternatives_n,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// CatalogInfo summarizes the loaded catalog and the active scorer.
type CatalogInfo struct {
	Version     string          `json:"version"`
	Occupations int             `json:"occupations"`
	Dimensions  map[string]int  `json:"dimensions"`
	Length      int             `json:"length"`
	Scorer      string          `json:"scorer"`
	Stats       recommend.Stats `json:"stats"`
}

// NewCatalogInfo builds a CatalogInfo from the engine's store.
func NewCatalogInfo(e *recommend.Engine) CatalogInfo {
	store := e.Store()
	schema := store.Schema()
	dims := make(map[string]int, 4)
	for g := catalog.GroupSkill; g <= catalog.GroupConstraint; g++ {
		dims[g.String()] = schema.GroupLen(g)
	}
	return CatalogInfo{
		Version:     store.Version(),
		Occupations: store.Len(),
		Dimensions:  dims,
		Length:      schema.Len(),
		Scorer:      e.ScorerName(),
		Stats:       e.Stats(),
	}
}

// HealthStatus is returned by the readiness probe.
type HealthStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	CatalogVersion string  `json:"catalog_version"`
	Occupations    int     `json:"occupations"`
	Scorer         string  `json:"scorer"`
	LLMEnabled     bool    `json:"llm_enabled"`
	LLMBreaker     string  `json:"llm_breaker,omitempty"`
	Uptime         float64 `json:"uptime"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
