// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"sync/atomic"
	"time"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/middleware"
	"github.com/tomtom215/careerpath/internal/recommend"
)

// Default handler limits.
const (
	defaultMaxBodyBytes   = 1 << 20
	defaultRequestTimeout = 10 * time.Second
)

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	// Version is reported by the readiness probe.
	Version string

	// MaxBodyBytes caps request bodies. Zero uses 1MiB.
	MaxBodyBytes int64

	// RequestTimeout bounds each engine call. Zero uses 10s.
	RequestTimeout time.Duration

	// Latency, when set, backs GET /api/v1/stats.
	Latency *middleware.LatencyTracker

	// BreakerState, when set, reports the language model circuit breaker
	// state. A nil function means no collaborators are configured.
	BreakerState func() string
}

// Handler serves the career recommendation API.
type Handler struct {
	engine    *recommend.Engine
	audit     *logging.AuditLogger
	config    HandlerConfig
	startTime time.Time
	draining  atomic.Bool
}

// NewHandler creates a handler around a ready engine.
func NewHandler(engine *recommend.Engine, cfg HandlerConfig) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		engine:    engine,
		audit:     logging.NewAuditLogger(logging.Logger()),
		config:    cfg,
		startTime: time.Now(),
	}
}

// SetDraining marks the handler as shutting down. Readiness then fails so
// load balancers stop routing new requests here.
func (h *Handler) SetDraining() {
	h.draining.Store(true)
}
