// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/recommend/reranking"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Ranking controls slot counts and the alternatives filter.
	Ranking RankingConfig `json:"ranking" koanf:"ranking"`

	// Normalization holds the display ranges for raw scores.
	Normalization NormalizationConfig `json:"normalization" koanf:"normalization"`

	// Matching controls how free-form skills map onto skill dimensions.
	Matching MatchingConfig `json:"matching" koanf:"matching"`

	// Explain controls per-candidate explanations.
	Explain ExplainConfig `json:"explain" koanf:"explain"`

	// Guardrail controls demographic screening, minimum count and uncertainty.
	Guardrail GuardrailConfig `json:"guardrail" koanf:"guardrail"`

	// Supplement controls when generated candidates are requested.
	Supplement SupplementConfig `json:"supplement" koanf:"supplement"`

	// Collaborators bounds the optional external collaborators.
	Collaborators CollaboratorConfig `json:"collaborators" koanf:"collaborators"`

	// Overlap controls skill overlap between two occupations.
	Overlap OverlapConfig `json:"overlap" koanf:"overlap"`
}

// RankingConfig controls slot counts and the alternatives filter.
type RankingConfig struct {
	// DefaultTopN is the number of primary slots when a request sets none.
	// Default: 5.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// DefaultAlternativesN is the number of alternative slots when a request sets none.
	// Default: 3.
	DefaultAlternativesN int `json:"default_alternatives_n" koanf:"default_alternatives_n"`

	// MaxTopN caps the primary slots a request may ask for.
	// Default: 25.
	MaxTopN int `json:"max_top_n" koanf:"max_top_n"`

	// MaxAlternativesN caps the alternative slots a request may ask for.
	// Default: 10.
	MaxAlternativesN int `json:"max_alternatives_n" koanf:"max_alternatives_n"`

	// AlternativeThreshold is the minimum normalized score of an alternative.
	// Default: 0.75.
	AlternativeThreshold float64 `json:"alternative_threshold" koanf:"alternative_threshold"`

	// GenericCategories are substrings marking broad, low-specificity
	// occupation names. Matching names never appear as alternatives.
	GenericCategories []string `json:"generic_categories" koanf:"generic_categories"`
}

// NormalizationConfig holds the display ranges for raw scores.
type NormalizationConfig struct {
	// SimilarityRange is used when the similarity scorer produced the scores.
	// Default: [0.4, 1.0].
	SimilarityRange reranking.Range `json:"similarity_range" koanf:"similarity_range"`

	// LearnedRange is used for learned scores.
	// Default: [0.4, 1.0].
	LearnedRange reranking.Range `json:"learned_range" koanf:"learned_range"`

	// LearnedLowRange replaces LearnedRange when the best learned raw score
	// in the window is below LowScoreTrigger.
	// Default: [0.35, 0.9].
	LearnedLowRange reranking.Range `json:"learned_low_range" koanf:"learned_low_range"`

	// LowScoreTrigger selects LearnedLowRange.
	// Default: 0.1.
	LowScoreTrigger float64 `json:"low_score_trigger" koanf:"low_score_trigger"`
}

// MatchingConfig controls how free-form skills map onto skill dimensions.
type MatchingConfig struct {
	// MinFuzzySimilarity is the minimum length ratio for a substring match
	// and the minimum token overlap for a word match.
	// Default: 0.25.
	MinFuzzySimilarity float64 `json:"min_fuzzy_similarity" koanf:"min_fuzzy_similarity"`

	// KeywordWeight scales keyword-map hits relative to direct matches.
	// Default: 0.8.
	KeywordWeight float64 `json:"keyword_weight" koanf:"keyword_weight"`

	// Keywords maps a lower-case keyword found in a user skill to the skill
	// dimensions it implies.
	Keywords map[string][]string `json:"keywords" koanf:"keywords"`
}

// ExplainConfig controls per-candidate explanations.
type ExplainConfig struct {
	// TopK is the maximum number of contributing features reported.
	// Default: 5.
	TopK int `json:"top_k" koanf:"top_k"`

	// MinContribution drops features with a smaller absolute contribution.
	// Default: 0.1.
	MinContribution float64 `json:"min_contribution" koanf:"min_contribution"`
}

// BandSpreads are the half-widths of score ranges per confidence band.
type BandSpreads struct {
	High    float64 `json:"high" koanf:"high"`
	Medium  float64 `json:"medium" koanf:"medium"`
	Low     float64 `json:"low" koanf:"low"`
	VeryLow float64 `json:"very_low" koanf:"very_low"`
}

// For returns the spread of a band.
func (s BandSpreads) For(b ConfidenceBand) float64 {
	switch b {
	case ConfidenceHigh:
		return s.High
	case ConfidenceMedium:
		return s.Medium
	case ConfidenceLow:
		return s.Low
	default:
		return s.VeryLow
	}
}

// GuardrailConfig controls demographic screening, minimum count and uncertainty.
type GuardrailConfig struct {
	// DenyTerms are demographic-proxy words. Input is rejected when any word
	// token of a screened field equals a term.
	DenyTerms []string `json:"deny_terms" koanf:"deny_terms"`

	// DenyConstraintKeys are constraint keys rejected outright.
	DenyConstraintKeys []string `json:"deny_constraint_keys" koanf:"deny_constraint_keys"`

	// MinRecommendations is the minimum primary list length.
	// Default: 3.
	MinRecommendations int `json:"min_recommendations" koanf:"min_recommendations"`

	// Spreads are the score range half-widths per band.
	// Default: High 0.05, Med 0.10, Low 0.15, Very Low 0.20.
	Spreads BandSpreads `json:"spreads" koanf:"spreads"`

	// ThinInputWidening is added to every spread for thin or empty input.
	// Default: 0.10.
	ThinInputWidening float64 `json:"thin_input_widening" koanf:"thin_input_widening"`

	// ThinInputGroups is the highest provided-group count still considered thin.
	// Default: 2.
	ThinInputGroups int `json:"thin_input_groups" koanf:"thin_input_groups"`
}

// SupplementConfig controls when generated candidates are requested.
type SupplementConfig struct {
	// Enabled allows the supplement policy to call a CareerGenerator.
	// Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// Threshold requests a supplement when the top raw score is below it.
	// Default: 0.90.
	Threshold float64 `json:"threshold" koanf:"threshold"`

	// SpecificSkillThreshold requests a supplement for profiles with
	// several multi-word skills when the top raw score is below it.
	// Default: 0.95.
	SpecificSkillThreshold float64 `json:"specific_skill_threshold" koanf:"specific_skill_threshold"`

	// MinSpecificSkills is the number of multi-word skills that makes a
	// profile specific.
	// Default: 2.
	MinSpecificSkills int `json:"min_specific_skills" koanf:"min_specific_skills"`

	// Count is the number of candidates requested from the generator.
	// Default: 5.
	Count int `json:"count" koanf:"count"`

	// TopGenericTerms mark a top candidate as generic for the specialized
	// signal rule.
	TopGenericTerms []string `json:"top_generic_terms" koanf:"top_generic_terms"`

	// SpecializedKeywords lists specialized-domain keywords per domain.
	SpecializedKeywords map[string][]string `json:"specialized_keywords" koanf:"specialized_keywords"`
}

// OverlapConfig controls skill overlap between two occupations.
type OverlapConfig struct {
	// MinImportance is the skill importance at which an occupation counts
	// the skill as required.
	// Default: 0.5.
	MinImportance float64 `json:"min_importance" koanf:"min_importance"`
}

// CollaboratorConfig bounds the optional external collaborators.
type CollaboratorConfig struct {
	// ExpandTimeout bounds one skill expansion call.
	// Default: 3s.
	ExpandTimeout time.Duration `json:"expand_timeout" koanf:"expand_timeout"`

	// GenerateTimeout bounds one career generation call.
	// Default: 5s.
	GenerateTimeout time.Duration `json:"generate_timeout" koanf:"generate_timeout"`

	// EnhanceTimeout bounds one narrative enhancement call.
	// Default: 3s.
	EnhanceTimeout time.Duration `json:"enhance_timeout" koanf:"enhance_timeout"`

	// MaxConcurrentEnhance limits parallel enhancement calls per request.
	// Default: 4.
	MaxConcurrentEnhance int `json:"max_concurrent_enhance" koanf:"max_concurrent_enhance"`

	// EnhanceAlternatives also enhances alternative explanations.
	// Default: false.
	EnhanceAlternatives bool `json:"enhance_alternatives" koanf:"enhance_alternatives"`
}

// DefaultGenericCategories are the default broad-category substrings.
var DefaultGenericCategories = []string{
	"technician", "technologist", "operator", "production", "manufacturing",
	"inspector", "assembler", "fabricator", "surveyor", "all other",
}

// DefaultTopGenericTerms mark a generic top candidate.
var DefaultTopGenericTerms = []string{
	"technician", "technologist", "operator", "inspector", "production manager",
	"industrial production", "manufacturing", "mechanical", "assembler", "fabricator",
}

// DefaultSpecializedKeywords are the default specialized-domain keywords.
var DefaultSpecializedKeywords = map[string][]string{
	"tech": {
		"programming", "software", "developer", "python", "javascript", "java",
		"web", "react", "database", "data", "machine learning", "cloud", "devops",
	},
	"medical": {
		"medical", "clinical", "healthcare", "nursing", "patient", "diagnostic",
		"surgical", "pharmacy", "therapeutic",
	},
	"business": {
		"marketing", "sales", "finance", "accounting", "consulting", "business",
		"strategy", "analytics", "economics", "investment",
	},
	"science": {
		"research", "scientific", "laboratory", "statistics", "biology",
		"chemistry", "physics", "engineering",
	},
	"creative": {
		"design", "graphics", "creative", "branding", "editing", "content",
		"media", "photography",
	},
	"education": {"teaching", "education", "curriculum", "counseling", "social work"},
	"legal":     {"legal", "law", "compliance", "policy", "regulatory"},
}

// DefaultKeywords are the default skill keyword mappings.
var DefaultKeywords = map[string][]string{
	"python":        {"Programming", "Systems Analysis", "Technology Design"},
	"javascript":    {"Programming", "Systems Analysis", "Technology Design"},
	"java":          {"Programming", "Systems Analysis"},
	"coding":        {"Programming", "Systems Analysis"},
	"software":      {"Programming", "Systems Analysis", "Quality Control Analysis"},
	"data":          {"Systems Analysis", "Mathematics", "Complex Problem Solving"},
	"project":       {"Management of Personnel Resources", "Time Management", "Coordination"},
	"leadership":    {"Management of Personnel Resources", "Coordination"},
	"communication": {"Speaking", "Active Listening", "Writing"},
	"analysis":      {"Systems Analysis", "Critical Thinking", "Complex Problem Solving"},
	"design":        {"Technology Design", "Operations Analysis"},
}

// DefaultDenyTerms are the default demographic-proxy words.
var DefaultDenyTerms = []string{
	"age", "gender", "sex", "race", "ethnicity", "religion", "nationality",
	"birth", "born", "disability", "veteran", "marital", "married", "divorced",
	"sexual", "orientation",
}

// DefaultDenyConstraintKeys are the default rejected constraint keys.
var DefaultDenyConstraintKeys = []string{
	"age", "gender", "race", "ethnicity", "religion", "nationality",
	"birth_country", "disability", "veteran_status", "marital_status",
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Ranking: RankingConfig{
			DefaultTopN:          5,
			DefaultAlternativesN: 3,
			MaxTopN:              25,
			MaxAlternativesN:     10,
			AlternativeThreshold: 0.75,
			GenericCategories:    cloneStrings(DefaultGenericCategories),
		},
		Normalization: NormalizationConfig{
			SimilarityRange: reranking.Range{Min: 0.4, Max: 1.0},
			LearnedRange:    reranking.Range{Min: 0.4, Max: 1.0},
			LearnedLowRange: reranking.Range{Min: 0.35, Max: 0.9},
			LowScoreTrigger: 0.1,
		},
		Matching: MatchingConfig{
			MinFuzzySimilarity: 0.25,
			KeywordWeight:      0.8,
			Keywords:           cloneStringLists(DefaultKeywords),
		},
		Explain: ExplainConfig{
			TopK:            5,
			MinContribution: 0.1,
		},
		Guardrail: GuardrailConfig{
			DenyTerms:          cloneStrings(DefaultDenyTerms),
			DenyConstraintKeys: cloneStrings(DefaultDenyConstraintKeys),
			MinRecommendations: 3,
			Spreads: BandSpreads{
				High:    0.05,
				Medium:  0.10,
				Low:     0.15,
				VeryLow: 0.20,
			},
			ThinInputWidening: 0.10,
			ThinInputGroups:   2,
		},
		Supplement: SupplementConfig{
			Enabled:                true,
			Threshold:              0.90,
			SpecificSkillThreshold: 0.95,
			MinSpecificSkills:      2,
			Count:                  5,
			TopGenericTerms:        cloneStrings(DefaultTopGenericTerms),
			SpecializedKeywords:    cloneStringLists(DefaultSpecializedKeywords),
		},
		Collaborators: CollaboratorConfig{
			ExpandTimeout:        3 * time.Second,
			GenerateTimeout:      5 * time.Second,
			EnhanceTimeout:       3 * time.Second,
			MaxConcurrentEnhance: 4,
		},
		Overlap: OverlapConfig{
			MinImportance: 0.5,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Ranking.DefaultTopN < 1 {
		return fmt.Errorf("ranking.default_top_n must be positive, got %d", c.Ranking.DefaultTopN)
	}
	if c.Ranking.DefaultAlternativesN < 0 {
		return fmt.Errorf("ranking.default_alternatives_n must be non-negative, got %d", c.Ranking.DefaultAlternativesN)
	}
	if c.Ranking.MaxTopN < c.Ranking.DefaultTopN {
		return fmt.Errorf("ranking.max_top_n must be >= ranking.default_top_n, got %d < %d", c.Ranking.MaxTopN, c.Ranking.DefaultTopN)
	}
	if c.Ranking.MaxAlternativesN < c.Ranking.DefaultAlternativesN {
		return fmt.Errorf("ranking.max_alternatives_n must be >= ranking.default_alternatives_n, got %d < %d",
			c.Ranking.MaxAlternativesN, c.Ranking.DefaultAlternativesN)
	}
	if c.Ranking.AlternativeThreshold < 0 || c.Ranking.AlternativeThreshold > 1 {
		return fmt.Errorf("ranking.alternative_threshold must be in [0, 1], got %f", c.Ranking.AlternativeThreshold)
	}

	ranges := []struct {
		name string
		r    reranking.Range
	}{
		{"similarity_range", c.Normalization.SimilarityRange},
		{"learned_range", c.Normalization.LearnedRange},
		{"learned_low_range", c.Normalization.LearnedLowRange},
	}
	for _, nr := range ranges {
		if err := nr.r.Validate(); err != nil {
			return fmt.Errorf("normalization.%s: %w", nr.name, err)
		}
	}
	if c.Normalization.LowScoreTrigger < 0 || c.Normalization.LowScoreTrigger > 1 {
		return fmt.Errorf("normalization.low_score_trigger must be in [0, 1], got %f", c.Normalization.LowScoreTrigger)
	}

	if c.Matching.MinFuzzySimilarity <= 0 || c.Matching.MinFuzzySimilarity > 1 {
		return fmt.Errorf("matching.min_fuzzy_similarity must be in (0, 1], got %f", c.Matching.MinFuzzySimilarity)
	}
	if c.Matching.KeywordWeight < 0 || c.Matching.KeywordWeight > 1 {
		return fmt.Errorf("matching.keyword_weight must be in [0, 1], got %f", c.Matching.KeywordWeight)
	}

	if c.Explain.TopK < 1 {
		return fmt.Errorf("explain.top_k must be positive, got %d", c.Explain.TopK)
	}
	if c.Explain.MinContribution < 0 {
		return fmt.Errorf("explain.min_contribution must be non-negative, got %f", c.Explain.MinContribution)
	}

	if len(c.Guardrail.DenyTerms) == 0 {
		return fmt.Errorf("guardrail.deny_terms must not be empty")
	}
	if c.Guardrail.MinRecommendations < 1 {
		return fmt.Errorf("guardrail.min_recommendations must be positive, got %d", c.Guardrail.MinRecommendations)
	}
	if c.Guardrail.MinRecommendations > c.Ranking.MaxTopN {
		return fmt.Errorf("guardrail.min_recommendations must be <= ranking.max_top_n, got %d > %d",
			c.Guardrail.MinRecommendations, c.Ranking.MaxTopN)
	}
	s := c.Guardrail.Spreads
	if s.High < 0 || s.Medium < s.High || s.Low < s.Medium || s.VeryLow < s.Low {
		return fmt.Errorf("guardrail.spreads must be non-negative and widen as confidence drops, got %+v", s)
	}
	if c.Guardrail.ThinInputWidening < 0 {
		return fmt.Errorf("guardrail.thin_input_widening must be non-negative, got %f", c.Guardrail.ThinInputWidening)
	}

	if c.Overlap.MinImportance <= 0 || c.Overlap.MinImportance > 1 {
		return fmt.Errorf("overlap.min_importance must be in (0, 1], got %f", c.Overlap.MinImportance)
	}

	if c.Supplement.Threshold < 0 || c.Supplement.Threshold > 1 {
		return fmt.Errorf("supplement.threshold must be in [0, 1], got %f", c.Supplement.Threshold)
	}
	if c.Supplement.SpecificSkillThreshold < 0 || c.Supplement.SpecificSkillThreshold > 1 {
		return fmt.Errorf("supplement.specific_skill_threshold must be in [0, 1], got %f", c.Supplement.SpecificSkillThreshold)
	}
	if c.Supplement.Enabled && c.Supplement.Count < 1 {
		return fmt.Errorf("supplement.count must be positive, got %d", c.Supplement.Count)
	}

	if c.Collaborators.ExpandTimeout <= 0 || c.Collaborators.GenerateTimeout <= 0 || c.Collaborators.EnhanceTimeout <= 0 {
		return fmt.Errorf("collaborators timeouts must be positive")
	}
	if c.Collaborators.MaxConcurrentEnhance < 1 {
		return fmt.Errorf("collaborators.max_concurrent_enhance must be positive, got %d", c.Collaborators.MaxConcurrentEnhance)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Ranking.GenericCategories = cloneStrings(c.Ranking.GenericCategories)
	out.Matching.Keywords = cloneStringLists(c.Matching.Keywords)
	out.Guardrail.DenyTerms = cloneStrings(c.Guardrail.DenyTerms)
	out.Guardrail.DenyConstraintKeys = cloneStrings(c.Guardrail.DenyConstraintKeys)
	out.Supplement.TopGenericTerms = cloneStrings(c.Supplement.TopGenericTerms)
	out.Supplement.SpecializedKeywords = cloneStringLists(c.Supplement.SpecializedKeywords)
	return &out
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type collaborators struct {
		ExpandTimeout        string `json:"expand_timeout"`
		GenerateTimeout      string `json:"generate_timeout"`
		EnhanceTimeout       string `json:"enhance_timeout"`
		MaxConcurrentEnhance int    `json:"max_concurrent_enhance"`
		EnhanceAlternatives  bool   `json:"enhance_alternatives"`
	}
	return json.Marshal(&struct {
		*Alias
		Collaborators collaborators `json:"collaborators"`
	}{
		Alias: (*Alias)(c),
		Collaborators: collaborators{
			ExpandTimeout:        c.Collaborators.ExpandTimeout.String(),
			GenerateTimeout:      c.Collaborators.GenerateTimeout.String(),
			EnhanceTimeout:       c.Collaborators.EnhanceTimeout.String(),
			MaxConcurrentEnhance: c.Collaborators.MaxConcurrentEnhance,
			EnhanceAlternatives:  c.Collaborators.EnhanceAlternatives,
		},
	})
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneStringLists(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = cloneStrings(v)
	}
	return out
}
