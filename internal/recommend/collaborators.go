// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import "context"

// SkillExpander maps colloquial skill names onto catalog skill dimensions.
// The result is skill -> dimension -> confidence (0-1). Skills it cannot
// expand are simply absent.
type SkillExpander interface {
	Expand(ctx context.Context, skills []string, dimensions []string) (map[string]map[string]float64, error)
}

// CareerGenerator proposes occupations that may be missing from the catalog.
type CareerGenerator interface {
	Generate(ctx context.Context, profile *UserProfile, n int) ([]GeneratedCareer, error)
}

// NarrativeEnhancer rewrites a mechanical rationale as richer prose.
type NarrativeEnhancer interface {
	Enhance(ctx context.Context, req EnhanceRequest) (string, error)
}

// GeneratedCareer is one candidate proposed by a CareerGenerator.
type GeneratedCareer struct {
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	Score         float64  `json:"score"`
	Why           string   `json:"why,omitempty"`
	KeySkills     []string `json:"key_skills,omitempty"`
	SalaryRange   string   `json:"salary_range,omitempty"`
	GrowthOutlook string   `json:"growth_outlook,omitempty"`
}

// EnhanceRequest is the input to a NarrativeEnhancer.
type EnhanceRequest struct {
	Profile             *UserProfile
	OccupationName      string
	OccupationCode      string
	MechanicalRationale string
	TopFeatures         []Feature
	NormalizedScore     float64
}

// Recorder receives engine instrumentation. Implementations must be safe
// for concurrent use.
type Recorder interface {
	// ObserveRequest records one completed ranking request.
	ObserveRequest(method string, seconds float64)

	// ScorerFallback records a per-request switch to the similarity scorer.
	ScorerFallback(reason string)

	// Collaborator records an optional collaborator call outcome:
	// ok, timeout, error or skipped.
	Collaborator(name, outcome string)

	// GuardrailRejected records a rejected profile by field class.
	GuardrailRejected(field string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string, float64) {}
func (nopRecorder) ScorerFallback(string)          {}
func (nopRecorder) Collaborator(string, string)    {}
func (nopRecorder) GuardrailRejected(string)       {}
