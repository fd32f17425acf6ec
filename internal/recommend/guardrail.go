// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// Guardrail names reported in Result.GuardrailsApplied.
const (
	GuardrailDemographicScreen = "demographic_screen"
	GuardrailMinimumCount      = "minimum_count"
	GuardrailUncertainty       = "uncertainty_ranges"
	GuardrailThinInput         = "thin_input_widening"
)

// Field classes reported in a GuardrailViolation signal.
const (
	fieldSkills      = "skills"
	fieldInterests   = "interests"
	fieldValues      = "values"
	fieldConstraints = "constraints"
	fieldNotes       = "notes"
	fieldOther       = "fields"
)

// termCategories groups known demographic terms for caller-facing signals.
var termCategories = map[string]string{
	"age":         "age",
	"birth":       "age",
	"born":        "age",
	"gender":      "gender",
	"sex":         "gender",
	"sexual":      "sexual orientation",
	"orientation": "sexual orientation",
	"race":        "race or ethnicity",
	"ethnicity":   "race or ethnicity",
	"nationality": "national origin",
	"religion":    "religion",
	"disability":  "disability",
	"veteran":     "veteran status",
	"marital":     "marital status",
	"married":     "marital status",
	"divorced":    "marital status",
}

// Guardrail screens profiles for demographic signals and post-processes
// ranked results. It is immutable and safe for concurrent use.
type Guardrail struct {
	cfg   GuardrailConfig
	terms map[string]struct{}
	keys  map[string]struct{}
}

// NewGuardrail builds a guardrail from configuration.
//
//nolint:gocritic // hugeParam: cfg copied once at construction
func NewGuardrail(cfg GuardrailConfig) *Guardrail {
	g := &Guardrail{
		cfg:   cfg,
		terms: make(map[string]struct{}, len(cfg.DenyTerms)),
		keys:  make(map[string]struct{}, len(cfg.DenyConstraintKeys)),
	}
	for _, t := range cfg.DenyTerms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			g.terms[t] = struct{}{}
		}
	}
	for _, k := range cfg.DenyConstraintKeys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			g.keys[k] = struct{}{}
		}
	}
	return g
}

// Screen rejects a profile carrying a demographic-proxy term in any screened
// field. The returned *GuardrailViolation names the field class and the
// term category only.
func (g *Guardrail) Screen(p *UserProfile) error {
	for _, s := range p.Skills {
		if err := g.check(fieldSkills, s.Name); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(p.Interests) {
		if err := g.check(fieldInterests, key); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(p.Values) {
		if err := g.check(fieldValues, key); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(p.Constraints.Extra) {
		if _, denied := g.keys[strings.ToLower(key)]; denied {
			return g.violation(fieldConstraints, firstToken(key))
		}
		if err := g.check(fieldConstraints, key); err != nil {
			return err
		}
		if err := g.checkValue(fieldConstraints, p.Constraints.Extra[key]); err != nil {
			return err
		}
	}
	if err := g.check(fieldNotes, p.Notes); err != nil {
		return err
	}
	for _, key := range p.UnknownFields {
		if err := g.check(fieldOther, key); err != nil {
			return err
		}
	}
	return nil
}

func (g *Guardrail) check(field, text string) error {
	for _, tok := range wordTokens(text) {
		if _, denied := g.terms[tok]; denied {
			return g.violation(field, tok)
		}
	}
	return nil
}

// checkValue screens string values, including those nested in lists.
func (g *Guardrail) checkValue(field string, v any) error {
	switch val := v.(type) {
	case string:
		return g.check(field, val)
	case []any:
		for _, item := range val {
			if err := g.checkValue(field, item); err != nil {
				return err
			}
		}
	case map[string]any:
		for _, key := range sortedKeys(val) {
			if err := g.check(field, key); err != nil {
				return err
			}
			if err := g.checkValue(field, val[key]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Guardrail) violation(field, term string) *GuardrailViolation {
	category, ok := termCategories[term]
	if !ok {
		category = "demographic attribute"
	}
	return &GuardrailViolation{Signal: fmt.Sprintf("%s (%s)", field, category)}
}

// Enforce applies the output guardrails to a ranked result. Short primary
// lists are topped up from rest, which holds every ranked candidate after
// the primaries in ranked order. Every returned candidate gets a score range.
func (g *Guardrail) Enforce(p *UserProfile, res *Result, rest []Candidate) (*Result, error) {
	if err := g.Screen(p); err != nil {
		return nil, err
	}

	applied := []string{GuardrailDemographicScreen}

	if need := g.cfg.MinRecommendations - len(res.Primary); need > 0 {
		taken := make(map[string]struct{}, need)
		for i := 0; i < len(rest) && len(taken) < need; i++ {
			c := rest[i]
			c.Fallback = true
			c.Source = SourceFallback
			c.Reasoning = fmt.Sprintf("Included to meet the minimum of %d recommendations; this is a lower-confidence match.",
				g.cfg.MinRecommendations)
			if c.Confidence.rank() > ConfidenceLow.rank() {
				c.Confidence = ConfidenceLow
			}
			if c.Explanation != nil {
				exp := *c.Explanation
				exp.Confidence = c.Confidence
				c.Explanation = &exp
			}
			res.Primary = append(res.Primary, c)
			taken[c.OccupationID] = struct{}{}
		}

		if len(taken) > 0 {
			kept := make([]Candidate, 0, len(res.Alternatives))
			for _, alt := range res.Alternatives {
				if _, ok := taken[alt.OccupationID]; !ok {
					kept = append(kept, alt)
				}
			}
			res.Alternatives = kept
			applied = append(applied, GuardrailMinimumCount)
		}
	}

	widen := 0.0
	if res.InputQuality == InputThin || res.InputQuality == InputEmpty {
		widen = g.cfg.ThinInputWidening
		res.InputQualityNote = inputQualityNote(res.InputQuality)
	}
	for i := range res.Primary {
		g.attachRange(&res.Primary[i], widen)
	}
	for i := range res.Alternatives {
		g.attachRange(&res.Alternatives[i], widen)
	}
	applied = append(applied, GuardrailUncertainty)
	if widen > 0 {
		applied = append(applied, GuardrailThinInput)
	}

	res.GuardrailsApplied = applied
	return res, nil
}

func (g *Guardrail) attachRange(c *Candidate, widen float64) {
	spread := g.cfg.Spreads.For(c.Confidence) + widen
	c.ScoreRange = [2]float64{clamp01(c.Score - spread), clamp01(c.Score + spread)}
}

func inputQualityNote(q InputQuality) string {
	if q == InputEmpty {
		return "No profile information was provided; results are broad suggestions with wide uncertainty ranges."
	}
	return "Limited profile information was provided; adding skills, interests and values will sharpen these results."
}

func firstToken(s string) string {
	toks := wordTokens(s)
	if len(toks) == 0 {
		return ""
	}
	return toks[0]
}

// DenyTerms returns the sorted active deny terms.
func (g *Guardrail) DenyTerms() []string {
	out := make([]string, 0, len(g.terms))
	for t := range g.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// DenyConstraintKeys returns the sorted constraint keys rejected outright.
func (g *Guardrail) DenyConstraintKeys() []string {
	out := make([]string, 0, len(g.keys))
	for k := range g.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GuardrailInfo describes the guardrails and filters applied to every
// ranking, for callers that disclose them to users.
type GuardrailInfo struct {
	Guardrails             []string    `json:"guardrails"`
	DemographicTerms       []string    `json:"demographic_keywords_blocked"`
	DeniedConstraintKeys   []string    `json:"constraint_keys_blocked"`
	MinimumRecommendations int         `json:"minimum_recommendations"`
	DefaultRecommendations int         `json:"default_recommendations"`
	ScoreRangeSpreads      BandSpreads `json:"score_range_spreads"`
	ThinInputWidening      float64     `json:"thin_input_widening"`
	AlternativeThreshold   float64     `json:"alternative_threshold"`
	GenericCategories      []string    `json:"generic_categories_excluded"`
}

// GuardrailInfo reports the active guardrail configuration.
func (e *Engine) GuardrailInfo() GuardrailInfo {
	g := e.guardrail
	return GuardrailInfo{
		Guardrails: []string{
			"No demographic features accepted, stored, or inferred",
			fmt.Sprintf("Always returns at least %d recommendations", g.cfg.MinRecommendations),
			"Uncertainty ranges and confidence bands on every score",
			"Wider ranges and a disclosure note for thin or empty input",
		},
		DemographicTerms:       g.DenyTerms(),
		DeniedConstraintKeys:   g.DenyConstraintKeys(),
		MinimumRecommendations: g.cfg.MinRecommendations,
		DefaultRecommendations: e.config.Ranking.DefaultTopN,
		ScoreRangeSpreads:      g.cfg.Spreads,
		ThinInputWidening:      g.cfg.ThinInputWidening,
		AlternativeThreshold:   e.config.Ranking.AlternativeThreshold,
		GenericCategories:      e.generic.Terms(),
	}
}
