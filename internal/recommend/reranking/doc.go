// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package reranking implements the post-scoring stages of the ranker:
// display-range calibration of raw scores and the alternatives quality filter.
//
// # Overview
//
// Reranking is applied after every occupation has been scored and sorted:
//
//	Scorer -> Sort (raw desc, id asc) -> Window normalization -> Primary / Alternatives split
//
// # Window Normalization
//
// Raw cosine similarities and classifier probabilities are often near zero
// for sparse profiles. FitWindow fits a min-max transform over the selected
// window only (primary plus alternative slots) and maps it onto a display
// Range such as [0.4, 1.0]:
//
//	normalized = Min + (Max - Min) * (raw - windowMin) / (windowMax - windowMin)
//
// The transform is linear and increasing, so relative order inside the
// window is preserved exactly. Scores beyond the window use the same
// transform clamped to [0, 1].
//
// # Alternatives Filter
//
// SelectAlternatives keeps candidates whose normalized score clears a
// threshold and whose name does not match a generic-category KeywordMatcher.
// It never pads: if nothing qualifies, the result is empty.
package reranking
