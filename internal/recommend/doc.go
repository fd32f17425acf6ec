// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package recommend ranks catalog occupations against a user profile and
// explains every ranked result.
//
// # Pipeline
//
// A recommendation request runs these stages in order:
//
//  1. Demographic screen of the raw profile (Guardrail.Screen)
//  2. Optional skill expansion (SkillExpander, timeout-bounded)
//  3. Feature encoding (FeatureBuilder)
//  4. Scoring with the learned model, or the similarity baseline when the
//     model is missing or fails for any candidate
//  5. Sort by raw score, ties by occupation id
//  6. Optional supplement with generated careers (CareerGenerator)
//  7. Window normalization and primary/alternatives selection
//  8. Mechanical explanation (Explainer)
//  9. Optional narrative enhancement (NarrativeEnhancer, concurrent)
//  10. Output guardrails (Guardrail.Enforce)
//
// Collaborators are never required. Any collaborator failure or timeout is
// logged and recorded, and the mechanical result is returned.
//
// # Determinism
//
// With collaborators disabled, identical profiles produce identical
// rankings, scores and explanations. Primary and alternatives, concatenated,
// are always in non-increasing raw score order.
//
// # Usage
//
//	store, err := catalog.Load("data/catalog.json")
//	if err != nil {
//	    return err
//	}
//	engine, err := recommend.NewEngine(store, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	profile, err := recommend.DecodeProfile(body)
//	if err != nil {
//	    return err
//	}
//	result, err := engine.Recommend(ctx, profile, recommend.Options{TopN: 5})
//
// # Thread Safety
//
// Engine, FeatureBuilder, Explainer and Guardrail are safe for concurrent
// use after construction. The Set methods on Engine must be called before
// the engine serves requests.
package recommend
