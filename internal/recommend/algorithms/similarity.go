// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package algorithms

import "fmt"

// SimilarityScorer scores by cosine similarity. All feature values are
// non-negative, so the result is already in [0, 1]; it is clamped to absorb
// floating point drift.
type SimilarityScorer struct{}

// NewSimilarityScorer creates the cosine baseline scorer.
func NewSimilarityScorer() *SimilarityScorer {
	return &SimilarityScorer{}
}

// Name returns the strategy identifier.
func (s *SimilarityScorer) Name() string {
	return NameSimilarity
}

// Score returns the cosine similarity of the two vectors.
func (s *SimilarityScorer) Score(user, occupation []float64) (float64, error) {
	if len(user) != len(occupation) {
		return 0, fmt.Errorf("vector length mismatch: user %d, occupation %d", len(user), len(occupation))
	}
	return clamp01(cosineSimilarity(user, occupation)), nil
}
