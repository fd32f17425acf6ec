// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package algorithms

import (
	"errors"
	"math"
)

// Strategy names reported in result method tags.
const (
	NameSimilarity = "similarity_baseline"
	NameLearned    = "learned_model"
)

// ErrScorerUnavailable indicates the learned scorer cannot serve a request.
// Callers recover by falling back to SimilarityScorer.
var ErrScorerUnavailable = errors.New("scorer unavailable")

// Scorer scores a user vector against an occupation vector.
type Scorer interface {
	// Name returns the strategy identifier.
	Name() string

	// Score returns a raw match score in [0, 1]. Both vectors must have the
	// same length.
	Score(user, occupation []float64) (float64, error)
}

// cosineSimilarity computes cosine similarity between two vectors.
// Returns 0 when lengths differ or either norm is zero.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
