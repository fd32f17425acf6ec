// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/careerpath/internal/middleware"
	"github.com/tomtom215/careerpath/internal/models"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
	latency *middleware.LatencyTracker
}

// NewRouter creates a router. mw may be nil for default CORS and rate
// limiting; latency may be nil to skip per-route latency windows.
func NewRouter(handler *Handler, mw *ChiMiddleware, latency *middleware.LatencyTracker) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, mw: mw, latency: latency}
}

// Setup builds the HTTP handler tree.
//
// Middleware order (outermost first):
//  1. RequestID
//  2. RealIP         - resolves the client address used for rate limiting
//  3. Recoverer
//  4. CORS
//  5. Compress
//  6. PrometheusMetrics and latency tracking, which read the final route pattern
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(middleware.PrometheusMetrics)
	if router.latency != nil {
		r.Use(router.latency.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, models.ErrCodeNotFound, "route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "method not allowed", nil, nil)
	})

	h := router.handler

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.mw.RateLimit())

			r.Post("/features", h.Features)
			r.Post("/recommendations", h.Recommendations)
			r.Post("/explain", h.Explain)
			r.Get("/occupations/{id}", h.Occupation)
			r.Get("/occupations/{id}/overlap", h.OccupationOverlap)
			r.Get("/guardrails/info", h.GuardrailsInfo)
			r.Get("/catalog", h.Catalog)
			r.Get("/stats", h.Stats)
		})
	})

	return r
}
