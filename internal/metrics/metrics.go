// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Engine Metrics
	RecommendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_request_duration_seconds",
			Help:    "Duration of ranking requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method"}, // similarity_baseline, learned_model, hybrid
	)

	RecommendScorerFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_scorer_fallbacks_total",
			Help: "Total number of requests that fell back to the similarity scorer",
		},
		[]string{"reason"},
	)

	RecommendCollaboratorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_collaborator_calls_total",
			Help: "Total number of optional collaborator calls by outcome",
		},
		[]string{"collaborator", "outcome"}, // outcome: ok, timeout, error, empty, skipped
	)

	RecommendGuardrailRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_guardrail_rejections_total",
			Help: "Total number of profiles rejected by the demographic screen",
		},
		[]string{"field"},
	)

	// Catalog Metrics
	CatalogOccupations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_occupations",
			Help: "Number of occupations in the loaded catalog",
		},
	)

	CatalogDimensions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_dimensions",
			Help: "Length of the catalog feature vector",
		},
	)

	CatalogInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_info",
			Help: "Loaded catalog version (always 1)",
		},
		[]string{"version"},
	)

	// LLM Client Metrics
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of chat completion calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 10, 20},
		},
		[]string{"operation"},
	)

	LLMRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_request_errors_total",
			Help: "Total number of failed chat completion calls",
		},
		[]string{"operation", "error_type"}, // error_type: http, decode, breaker, rate_limit, canceled
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLLMRequest records one chat completion call. errorType is empty on success.
func RecordLLMRequest(operation string, duration time.Duration, errorType string) {
	LLMRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if errorType != "" {
		LLMRequestErrors.WithLabelValues(operation, errorType).Inc()
	}
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}

// SetCatalog publishes the shape of the loaded catalog.
func SetCatalog(version string, occupations, dimensions int) {
	CatalogInfo.Reset()
	CatalogInfo.WithLabelValues(version).Set(1)
	CatalogOccupations.Set(float64(occupations))
	CatalogDimensions.Set(float64(dimensions))
}
