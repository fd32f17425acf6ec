// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package api provides the HTTP REST API layer for Careerpath.

It exposes the recommendation engine over JSON. Every response uses the
envelope defined in internal/models:

	{"status": "success", "data": ..., "metadata": {"timestamp": ..., "request_id": ...}}
	{"status": "error", "error": {"code": "VALIDATION_ERROR", "message": ..., "details": ...}}

Endpoints:

	GET  /api/v1/health/live       liveness probe
	GET  /api/v1/health/ready      readiness probe (catalog loaded, not draining)
	POST /api/v1/features          encode a profile into its feature vector
	POST /api/v1/recommendations   rank occupations for a profile (?top_n=&alternatives_n=)
	POST /api/v1/explain           explain one occupation for a profile
	GET  /api/v1/occupations/{id}  catalog entry lookup
	GET  /api/v1/occupations/{id}/overlap?target=
	                               skill transferability between two occupations
	GET  /api/v1/guardrails/info   active guardrails, blocked terms and range spreads
	GET  /api/v1/catalog           catalog version, dimension counts and scorer
	GET  /api/v1/stats             engine counters and per-route latency
	GET  /metrics                  Prometheus exposition

Error mapping:

  - Malformed bodies and out-of-range options: 400 VALIDATION_ERROR
  - Protected attributes in the profile: 422 GUARDRAIL_VIOLATION (audited)
  - Unknown occupation: 404 OCCUPATION_NOT_FOUND
  - Oversized body: 413 PAYLOAD_TOO_LARGE
  - Rate limit: 429 RATE_LIMITED
  - Anything else: 500 RECOMMENDATION_FAILED, with details kept in the logs

The /api/v1 data routes are rate limited per client IP with go-chi/httprate.
CORS is handled by go-chi/cors. Health probes and /metrics are not limited.
*/
package api
