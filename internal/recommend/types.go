// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"github.com/tomtom215/careerpath/internal/catalog"
	"github.com/tomtom215/careerpath/internal/recommend/algorithms"
)

// Method tags reported on a Result.
const (
	// MethodLearned means the pretrained classifier scored every candidate.
	MethodLearned = algorithms.NameLearned

	// MethodSimilarity means cosine similarity scored every candidate.
	MethodSimilarity = algorithms.NameSimilarity

	// MethodHybrid means generated candidates entered the ranked pool.
	MethodHybrid = "hybrid_with_supplement"
)

// Candidate sources.
const (
	SourceCatalog   = "catalog"
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// GeneratedIDPrefix prefixes the id of every generated candidate.
const GeneratedIDPrefix = "generated:"

// ConfidenceBand is a qualitative bucket for a normalized score.
type ConfidenceBand string

const (
	// ConfidenceHigh is assigned to normalized scores >= 0.8.
	ConfidenceHigh ConfidenceBand = "High"
	// ConfidenceMedium is assigned to normalized scores >= 0.6.
	ConfidenceMedium ConfidenceBand = "Med"
	// ConfidenceLow is assigned to normalized scores >= 0.4.
	ConfidenceLow ConfidenceBand = "Low"
	// ConfidenceVeryLow is assigned to everything below 0.4.
	ConfidenceVeryLow ConfidenceBand = "Very Low"
)

// rank orders bands from least to most confident.
func (b ConfidenceBand) rank() int {
	switch b {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// InputQuality summarizes how much of the profile the caller supplied.
type InputQuality string

const (
	InputEmpty      InputQuality = "empty"
	InputThin       InputQuality = "thin"
	InputSufficient InputQuality = "sufficient"
)

// SkillInput is one user skill with an importance on a 0-5 scale.
type SkillInput struct {
	// Name is the free-form skill name as typed by the user.
	Name string `json:"name" validate:"dimkey"`

	// Importance is the self-rated importance (0-5).
	// Default: 3 when omitted.
	Importance float64 `json:"importance" validate:"gte=0,lte=5"`
}

// Constraints holds the structured constraint flags of a profile.
type Constraints struct {
	// MinWage is the minimum acceptable annual wage.
	MinWage *float64 `json:"min_wage,omitempty" validate:"omitempty,gte=0"`

	// RemotePreferred requests remote-feasible work.
	RemotePreferred *bool `json:"remote_preferred,omitempty"`

	// MaxEducationLevel is the highest education level the user will pursue (0-5).
	MaxEducationLevel *float64 `json:"max_education_level,omitempty" validate:"omitempty,gte=0,lte=5"`

	// Extra holds unrecognized constraint keys. They are screened by the
	// guardrail and never scored.
	Extra map[string]any `json:"-"`
}

// empty reports whether no constraint was supplied.
func (c *Constraints) empty() bool {
	return c.MinWage == nil && c.RemotePreferred == nil && c.MaxEducationLevel == nil && len(c.Extra) == 0
}

// UserProfile is a per-request user profile. It is never persisted.
type UserProfile struct {
	// Skills are free-form skill names with importance weights.
	Skills []SkillInput `json:"skills,omitempty" validate:"max=200,dive"`

	// Interests maps RIASEC category to a 0-7 score.
	Interests map[string]float64 `json:"interests,omitempty" validate:"max=50,dive,keys,dimkey,endkeys,gte=0,lte=7"`

	// Values maps work value to a 0-7 score.
	Values map[string]float64 `json:"values,omitempty" validate:"max=50,dive,keys,dimkey,endkeys,gte=0,lte=7"`

	// Constraints are optional structured flags.
	Constraints Constraints `json:"constraints"`

	// Notes is free text. It is screened by the guardrail and never scored.
	Notes string `json:"notes,omitempty" validate:"max=5000"`

	// UnknownFields lists top-level input fields that were ignored.
	UnknownFields []string `json:"-"`
}

// FeatureVector is a user vector aligned to a catalog DimensionSchema.
type FeatureVector struct {
	// Values holds one entry in [0,1] per schema dimension.
	Values []float64 `json:"values"`

	// Unmapped lists user skills that matched no catalog dimension.
	Unmapped []string `json:"unmapped"`

	// Ignored lists interest and value keys not present in the schema.
	Ignored []string `json:"ignored"`

	// Expanded lists user skills resolved through the skill expander.
	Expanded []string `json:"expanded,omitempty"`

	schema *catalog.DimensionSchema
}

// Len returns the vector length.
func (v *FeatureVector) Len() int {
	return len(v.Values)
}

// Schema returns the schema the vector is aligned to.
func (v *FeatureVector) Schema() *catalog.DimensionSchema {
	return v.schema
}

// Feature is one contributing dimension of an explanation.
type Feature struct {
	Name            string  `json:"name"`
	Group           string  `json:"group"`
	UserValue       float64 `json:"user_value"`
	OccupationValue float64 `json:"occ_value"`
	Contribution    float64 `json:"contribution"`
}

// Explanation is the structured rationale for one user/occupation pair.
type Explanation struct {
	// TopFeatures are the strongest contributing dimensions, strongest first.
	TopFeatures []Feature `json:"top_features"`

	// Rationale is a short "why" sentence.
	Rationale string `json:"rationale"`

	// WhyPoints has one line per top feature.
	WhyPoints []string `json:"why_points"`

	// Confidence is the band of the candidate's normalized score.
	Confidence ConfidenceBand `json:"confidence"`

	// Enhanced is true when Rationale came from the narrative enhancer.
	Enhanced bool `json:"enhanced"`
}

// Candidate is a scored occupation within one request.
type Candidate struct {
	OccupationID string         `json:"occupation_id"`
	Name         string         `json:"name"`
	Code         string         `json:"code,omitempty"`
	RawScore     float64        `json:"raw_score"`
	Score        float64        `json:"score"`
	ScoreRange   [2]float64     `json:"score_range"`
	Confidence   ConfidenceBand `json:"confidence"`
	Explanation  *Explanation   `json:"explanation,omitempty"`

	// Source is catalog, generated or fallback.
	Source string `json:"source"`

	// Fallback marks entries added to satisfy the minimum count.
	Fallback bool `json:"fallback,omitempty"`

	// Reasoning explains why a fallback entry was included.
	Reasoning string `json:"reasoning,omitempty"`

	// Generated carries collaborator details for generated candidates.
	Generated *GeneratedCareer `json:"generated,omitempty"`

	occupation *catalog.Occupation
}

// Result is the final recommendation response.
type Result struct {
	Primary      []Candidate `json:"primary"`
	Alternatives []Candidate `json:"alternatives"`

	// Method is learned_model, similarity_baseline or hybrid_with_supplement.
	Method string `json:"method"`

	// Scorer names the strategy that produced raw scores.
	Scorer string `json:"scorer"`

	InputQuality      InputQuality `json:"input_quality"`
	InputQualityNote  string       `json:"input_quality_note,omitempty"`
	GuardrailsApplied []string     `json:"guardrails_applied"`
	Unmapped          []string     `json:"unmapped"`

	RequestID       string `json:"request_id,omitempty"`
	CatalogVersion  string `json:"catalog_version,omitempty"`
	TotalCandidates int    `json:"total_candidates"`
	LatencyMS       int64  `json:"latency_ms"`
}

// Options are per-request ranking parameters. A zero TopN takes the
// configured default. A nil AlternativesN takes the configured default;
// a pointer to 0 requests no alternatives.
type Options struct {
	TopN          int    `json:"top_n" validate:"gte=0"`
	AlternativesN *int   `json:"alternatives_n,omitempty" validate:"omitempty,gte=0"`
	RequestID     string `json:"request_id,omitempty"`
}

// Count returns a pointer to n, for optional Options fields.
func Count(n int) *int {
	return &n
}

// alternatives returns the resolved alternatives count. It is only
// meaningful after prepareOptions.
//
//nolint:gocritic // hugeParam: Options is small and passed by value throughout
func (o Options) alternatives() int {
	if o.AlternativesN == nil {
		return 0
	}
	return *o.AlternativesN
}

// Stats reports cumulative engine counters.
type Stats struct {
	Requests          int64 `json:"requests"`
	ScorerFallbacks   int64 `json:"scorer_fallbacks"`
	Supplemented      int64 `json:"supplemented"`
	GuardrailRejected int64 `json:"guardrail_rejected"`
	Errors            int64 `json:"errors"`
}
