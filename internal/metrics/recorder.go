// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package metrics

// EngineRecorder forwards recommendation engine instrumentation to the
// package-level Prometheus collectors. The zero value is ready to use.
type EngineRecorder struct{}

// ObserveRequest records one completed ranking request.
func (EngineRecorder) ObserveRequest(method string, seconds float64) {
	RecommendRequestDuration.WithLabelValues(method).Observe(seconds)
}

// ScorerFallback records a per-request switch to the similarity scorer.
func (EngineRecorder) ScorerFallback(reason string) {
	RecommendScorerFallbacks.WithLabelValues(reason).Inc()
}

// Collaborator records an optional collaborator call outcome.
func (EngineRecorder) Collaborator(name, outcome string) {
	RecommendCollaboratorCalls.WithLabelValues(name, outcome).Inc()
}

// GuardrailRejected records a rejected profile by field class.
func (EngineRecorder) GuardrailRejected(field string) {
	RecommendGuardrailRejections.WithLabelValues(field).Inc()
}
