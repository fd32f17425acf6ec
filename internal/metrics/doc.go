// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with the default registry via promauto at package
init and exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - recommend_request_duration_seconds: Ranking latency (histogram)
    Labels: method (similarity_baseline, learned_model, hybrid)
  - recommend_scorer_fallbacks_total: Learned scorer fallbacks (counter)
    Labels: reason
  - recommend_collaborator_calls_total: Optional collaborator outcomes (counter)
    Labels: collaborator, outcome
  - recommend_guardrail_rejections_total: Rejected profiles (counter)
    Labels: field

Catalog Metrics:
  - catalog_occupations, catalog_dimensions (gauges)
  - catalog_info: Loaded version (gauge, always 1)

LLM Metrics:
  - llm_request_duration_seconds, llm_request_errors_total
  - cache_hits_total, cache_misses_total (label: cache)
  - circuit_breaker_state (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total, circuit_breaker_consecutive_failures,
    circuit_breaker_state_transitions_total

# Engine Instrumentation

EngineRecorder satisfies the recommendation engine's Recorder interface:

	engine.SetRecorder(metrics.EngineRecorder{})

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
