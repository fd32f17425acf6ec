// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
)

// Features handles POST /api/v1/features.
// Returns the encoded feature vector of the posted profile.
func (h *Handler) Features(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	profile, err := h.decodeProfile(w, r)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	fv, err := h.engine.BuildFeatures(ctx, profile)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, start, models.NewFeatureResponse(fv))
}

// Recommendations handles POST /api/v1/recommendations?top_n=&alternatives_n=.
// The body is a user profile. An absent or zero top_n and an absent
// alternatives_n use the configured defaults; alternatives_n=0 requests none.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, err := parseRankQuery(r)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	if apiErr := validateRequest(query); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	profile, err := h.decodeProfile(w, r)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	result, err := h.engine.Recommend(ctx, profile, recommend.Options{
		TopN:          query.TopN,
		AlternativesN: query.AlternativesN,
		RequestID:     logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, start, result)
}

func parseRankQuery(r *http.Request) (*models.RankQuery, error) {
	topN, err := getIntParam(r, "top_n", 0)
	if err != nil {
		return nil, err
	}
	altN, err := getOptionalIntParam(r, "alternatives_n")
	if err != nil {
		return nil, err
	}
	return &models.RankQuery{TopN: topN, AlternativesN: altN}, nil
}

// Explain handles POST /api/v1/explain.
// The body is {"profile": {...}, "occupation_id": "..."}.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	data, err := h.readBody(w, r)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	var req models.ExplainRequest
	if err := json.Unmarshal(data, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			"body must be a JSON object with profile and occupation_id", nil, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	profile, err := recommend.DecodeProfile(req.Profile)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	candidate, err := h.engine.Explain(ctx, profile, req.OccupationID)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, start, candidate)
}

// Occupation handles GET /api/v1/occupations/{id}.
func (h *Handler) Occupation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id := chi.URLParam(r, "id")
	occ, ok := h.engine.Store().Get(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, models.ErrCodeOccupationNotFound, "occupation not found", nil, nil)
		return
	}

	respondSuccess(w, r, start, occ)
}

// Catalog handles GET /api/v1/catalog.
// Returns the catalog version, dimension counts and active scorer.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, time.Now(), models.NewCatalogInfo(h.engine))
}

// Stats handles GET /api/v1/stats.
// Returns per-route latency windows and cumulative engine counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"engine": h.engine.Stats(),
	}
	if h.config.Latency != nil {
		data["endpoints"] = h.config.Latency.Stats()
	}
	respondSuccess(w, r, time.Now(), data)
}

// OccupationOverlap handles GET /api/v1/occupations/{id}/overlap?target=.
// Compares the skill requirements of occupation {id} with the target.
func (h *Handler) OccupationOverlap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	target := r.URL.Query().Get("target")
	if target == "" {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "target is required",
			map[string]interface{}{"field": "target", "reason": "required"}, nil)
		return
	}

	overlap, err := h.engine.SkillOverlap(chi.URLParam(r, "id"), target)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, start, overlap)
}

// GuardrailsInfo handles GET /api/v1/guardrails/info.
// Discloses the active guardrails, blocked terms and score range spreads.
func (h *Handler) GuardrailsInfo(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, time.Now(), h.engine.GuardrailInfo())
}
