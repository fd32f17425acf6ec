// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package algorithms implements the scoring strategies used by the
// recommendation engine.
//
// Each strategy implements Scorer and produces a raw score in [0, 1] for an
// aligned (user vector, occupation vector) pair.
//
// # Strategies
//
//   - SimilarityScorer: cosine similarity baseline, always available
//   - LearnedScorer: pretrained good-match classifier over [u, o, |u-o|]
//
// The engine treats any LearnedScorer failure as ErrScorerUnavailable and
// rescores the request with SimilarityScorer.
//
// # Thread Safety
//
// Scorers and LogisticModel are immutable after construction and safe for
// concurrent use.
package algorithms
