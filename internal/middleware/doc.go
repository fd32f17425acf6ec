// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: assigns X-Request-ID and seeds the logging context with the
    request and correlation identifiers
  - PrometheusMetrics: request count, latency histogram and in-flight gauge,
    labeled by chi route pattern
  - LatencyTracker: bounded per-route latency windows with percentile
    summaries and slow-request warnings

All middleware has the func(http.Handler) http.Handler shape expected by
chi's Use. Metrics middleware must be installed on the router itself (not
on a sub-router mounted before routing) so that RoutePattern sees the
complete pattern after the handler returns.

Example:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(tracker.Middleware)
*/
package middleware
