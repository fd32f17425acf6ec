// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/careerpath/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if a catalog is loaded and the server is not draining.
// An open language model breaker degrades the status but does not fail
// readiness, because the engine falls back to its mechanical paths.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := models.HealthStatus{
		Status:  "ready",
		Version: h.config.Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}

	ready := h.engine != nil && h.engine.Store().Len() > 0 && !h.draining.Load()
	if h.engine != nil {
		health.CatalogVersion = h.engine.Store().Version()
		health.Occupations = h.engine.Store().Len()
		health.Scorer = h.engine.ScorerName()
	}
	if h.config.BreakerState != nil {
		health.LLMEnabled = true
		health.LLMBreaker = h.config.BreakerState()
		if health.LLMBreaker == "open" {
			health.Status = "degraded"
		}
	}

	statusCode := http.StatusOK
	status := "success"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "error"
		health.Status = "not_ready"
	}

	resp := &models.APIResponse{
		Status: status,
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	}
	if !ready {
		resp.Error = &models.APIError{Code: models.ErrCodeNotReady, Message: "service is not ready"}
	}
	respondJSON(w, statusCode, resp)
}
