// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package algorithms

import (
	"fmt"
	"math"
)

// Classifier is a pretrained binary good-match classifier.
type Classifier interface {
	// PredictProbability returns P(good match) for one feature row.
	PredictProbability(features []float64) (float64, error)
}

// LearnedScorer scores with a pretrained classifier over the concatenation
// [user, occupation, |user - occupation|].
type LearnedScorer struct {
	model     Classifier
	dimension int
}

// NewLearnedScorer wraps a classifier trained on vectors of the given
// dimension. A nil classifier yields a scorer that always reports
// ErrScorerUnavailable.
func NewLearnedScorer(model Classifier, dimension int) *LearnedScorer {
	return &LearnedScorer{model: model, dimension: dimension}
}

// Name returns the strategy identifier.
func (s *LearnedScorer) Name() string {
	return NameLearned
}

// Available reports whether a model is loaded.
func (s *LearnedScorer) Available() bool {
	return s != nil && s.model != nil
}

// Score returns the classifier probability. Any classifier failure,
// including a panic or a non-finite output, is reported as
// ErrScorerUnavailable.
func (s *LearnedScorer) Score(user, occupation []float64) (score float64, err error) {
	if !s.Available() {
		return 0, fmt.Errorf("%w: no model loaded", ErrScorerUnavailable)
	}
	if len(user) != s.dimension || len(occupation) != s.dimension {
		return 0, fmt.Errorf("%w: model expects dimension %d, got user %d occupation %d",
			ErrScorerUnavailable, s.dimension, len(user), len(occupation))
	}

	defer func() {
		if r := recover(); r != nil {
			score, err = 0, fmt.Errorf("%w: classifier panic: %v", ErrScorerUnavailable, r)
		}
	}()

	p, err := s.model.PredictProbability(PairFeatures(user, occupation))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrScorerUnavailable, err)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("%w: non-finite probability", ErrScorerUnavailable)
	}

	return clamp01(p), nil
}

// PairFeatures builds the classifier input [u, o, |u-o|].
func PairFeatures(user, occupation []float64) []float64 {
	n := len(user)
	out := make([]float64, 3*n)
	copy(out, user)
	copy(out[n:], occupation)
	for i := 0; i < n; i++ {
		out[2*n+i] = math.Abs(user[i] - occupation[i])
	}
	return out
}
