// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"strings"

	"github.com/tomtom215/careerpath/internal/catalog"
	"github.com/tomtom215/careerpath/internal/recommend/reranking"
)

// Supplement trigger reasons.
const (
	supplementLowScore      = "low_top_score"
	supplementGenericTop    = "generic_top_specialized_profile"
	supplementSpecificSkill = "specific_skills"
)

// modernCode is the code given to generated careers without a SOC code.
const modernCode = "MODERN"

// supplementPolicy decides when generated candidates are requested.
type supplementPolicy struct {
	cfg         SupplementConfig
	topGeneric  *reranking.KeywordMatcher
	specialized *reranking.KeywordMatcher
}

//nolint:gocritic // hugeParam: cfg copied once at construction
func newSupplementPolicy(cfg SupplementConfig) *supplementPolicy {
	var keywords []string
	for _, domain := range sortedKeys(cfg.SpecializedKeywords) {
		keywords = append(keywords, cfg.SpecializedKeywords[domain]...)
	}
	return &supplementPolicy{
		cfg:         cfg,
		topGeneric:  reranking.NewKeywordMatcher(cfg.TopGenericTerms),
		specialized: reranking.NewKeywordMatcher(keywords),
	}
}

// reason returns why a supplement should be requested for the ranked pool,
// or "" when it should not. Profiles without skills never trigger one.
func (s *supplementPolicy) reason(p *UserProfile, top *Candidate) string {
	if !s.cfg.Enabled || top == nil || len(p.Skills) == 0 {
		return ""
	}

	if top.RawScore < s.cfg.Threshold {
		return supplementLowScore
	}

	if _, generic := s.topGeneric.Match(top.Name); generic {
		for _, skill := range p.Skills {
			if _, ok := s.specialized.Match(skill.Name); ok {
				return supplementGenericTop
			}
		}
	}

	specific := 0
	for _, skill := range p.Skills {
		if len(strings.Fields(skill.Name)) >= 2 {
			specific++
		}
	}
	if specific >= s.cfg.MinSpecificSkills && top.RawScore < s.cfg.SpecificSkillThreshold {
		return supplementSpecificSkill
	}

	return ""
}

// generatedCandidates converts collaborator output into candidates.
// Entries without a name are dropped.
func generatedCandidates(careers []GeneratedCareer) []Candidate {
	out := make([]Candidate, 0, len(careers))
	for i := range careers {
		gc := careers[i]
		folded := catalog.Fold(gc.Name)
		if folded == "" {
			continue
		}
		gc.Name = strings.TrimSpace(gc.Name)
		gc.Score = clamp01(gc.Score)
		if gc.Code == "" {
			gc.Code = modernCode
		}
		out = append(out, Candidate{
			OccupationID: GeneratedIDPrefix + strings.ReplaceAll(folded, " ", "-"),
			Name:         gc.Name,
			Code:         gc.Code,
			RawScore:     gc.Score,
			Source:       SourceGenerated,
			Generated:    &gc,
		})
	}
	return out
}

// mergeCandidates merges generated candidates into a sorted pool, keeping
// only the highest-ranked entry per normalized name. It reports how many
// generated candidates survived.
func mergeCandidates(pool, generated []Candidate) ([]Candidate, int) {
	merged := make([]Candidate, 0, len(pool)+len(generated))
	merged = append(merged, pool...)
	merged = append(merged, generated...)
	sortCandidates(merged)

	seen := make(map[string]struct{}, len(merged))
	out := merged[:0]
	kept := 0
	for _, c := range merged {
		key := catalog.Fold(c.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if c.Source == SourceGenerated {
			kept++
		}
		out = append(out, c)
	}
	return out, kept
}

// generatedExplanation is the mechanical explanation of a generated
// candidate. It has no occupation vector to decompose.
func generatedExplanation(c *Candidate) *Explanation {
	exp := &Explanation{
		TopFeatures: []Feature{},
		Rationale:   fallbackRationale,
		WhyPoints:   []string{},
		Confidence:  c.Confidence,
	}
	if c.Generated == nil {
		return exp
	}
	if why := strings.TrimSpace(c.Generated.Why); why != "" {
		exp.WhyPoints = append(exp.WhyPoints, why)
	}
	for _, skill := range c.Generated.KeySkills {
		exp.WhyPoints = append(exp.WhyPoints, "Uses your "+skill+" skill")
	}
	return exp
}
