// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tomtom215/careerpath/internal/catalog"
)

// FeatureBuilder converts user profiles into vectors aligned to one schema.
// It is immutable and safe for concurrent use.
type FeatureBuilder struct {
	schema   *catalog.DimensionSchema
	cfg      MatchingConfig
	skills   []skillDim
	keywords []keywordRule
}

type skillDim struct {
	index  int
	folded string
	tokens map[string]struct{}
}

type keywordRule struct {
	keyword string
	indexes []int
}

// NewFeatureBuilder prepares matching tables for a schema.
//
//nolint:gocritic // hugeParam: cfg copied once at construction
func NewFeatureBuilder(schema *catalog.DimensionSchema, cfg MatchingConfig) *FeatureBuilder {
	b := &FeatureBuilder{schema: schema, cfg: cfg}

	for _, name := range schema.Skills() {
		idx, _ := schema.Index(catalog.GroupSkill, name)
		folded := catalog.Fold(name)
		b.skills = append(b.skills, skillDim{index: idx, folded: folded, tokens: tokenSet(folded)})
	}

	// Longest keyword first so "javascript" wins over "java".
	keywords := sortedKeys(cfg.Keywords)
	sort.SliceStable(keywords, func(i, j int) bool { return len(keywords[i]) > len(keywords[j]) })
	for _, kw := range keywords {
		rule := keywordRule{keyword: strings.ToLower(kw)}
		for _, target := range cfg.Keywords[kw] {
			if idx, ok := schema.Index(catalog.GroupSkill, target); ok {
				rule.indexes = append(rule.indexes, idx)
			}
		}
		if len(rule.indexes) > 0 {
			b.keywords = append(b.keywords, rule)
		}
	}

	return b
}

// Schema returns the schema vectors are aligned to.
func (b *FeatureBuilder) Schema() *catalog.DimensionSchema {
	return b.schema
}

// NewFeatureVector aligns prebuilt values to schema. The length must match
// the schema and every value must lie in [0,1].
func NewFeatureVector(schema *catalog.DimensionSchema, values []float64) (*FeatureVector, error) {
	if schema == nil || len(values) != schema.Len() {
		return nil, &ValidationError{Field: "vector", Reason: "not aligned to the catalog dimension schema"}
	}
	for i, v := range values {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, &ValidationError{Field: "vector", Reason: fmt.Sprintf("value %d must be in [0,1]", i)}
		}
	}
	out := make([]float64, len(values))
	copy(out, values)
	return &FeatureVector{Values: out, Unmapped: []string{}, Ignored: []string{}, schema: schema}, nil
}

// Build encodes a profile. expansions holds optional skill expansion
// results keyed by the user's skill name; it may be nil.
func (b *FeatureBuilder) Build(p *UserProfile, expansions map[string]map[string]float64) (*FeatureVector, error) {
	if err := ValidateProfile(p); err != nil {
		return nil, err
	}

	fv := &FeatureVector{
		Values:   make([]float64, b.schema.Len()),
		Unmapped: []string{},
		Ignored:  []string{},
		schema:   b.schema,
	}

	for _, s := range p.Skills {
		weight := s.Importance / 5.0
		if b.applyExpansion(fv.Values, weight, expansions[s.Name]) {
			fv.Expanded = append(fv.Expanded, s.Name)
			continue
		}
		if b.matchSkill(fv.Values, weight, s.Name) {
			continue
		}
		fv.Unmapped = append(fv.Unmapped, s.Name)
	}

	b.encodeScores(fv, catalog.GroupInterest, p.Interests)
	b.encodeScores(fv, catalog.GroupValue, p.Values)
	b.encodeConstraints(fv.Values, &p.Constraints)

	sort.Strings(fv.Ignored)
	return fv, nil
}

// applyExpansion writes (importance/5)*confidence for each expanded dimension.
func (b *FeatureBuilder) applyExpansion(vec []float64, weight float64, expanded map[string]float64) bool {
	hit := false
	for dim, conf := range expanded {
		idx, ok := b.schema.Index(catalog.GroupSkill, dim)
		if !ok {
			continue
		}
		setMax(vec, idx, weight*clamp01(conf))
		hit = true
	}
	return hit
}

// matchSkill tries exact, substring, token overlap and keyword matching in turn.
func (b *FeatureBuilder) matchSkill(vec []float64, weight float64, name string) bool {
	folded := catalog.Fold(name)
	if folded == "" {
		return false
	}

	if idx, ok := b.schema.Index(catalog.GroupSkill, folded); ok {
		setMax(vec, idx, weight)
		return true
	}

	hit := false
	for _, d := range b.skills {
		if !strings.Contains(d.folded, folded) && !strings.Contains(folded, d.folded) {
			continue
		}
		if lengthRatio(folded, d.folded) >= b.cfg.MinFuzzySimilarity {
			setMax(vec, d.index, weight)
			hit = true
		}
	}
	if hit {
		return true
	}

	tokens := tokenSet(folded)
	best, bestIdx := 0.0, -1
	for _, d := range b.skills {
		if j := jaccard(tokens, d.tokens); j > best {
			best, bestIdx = j, d.index
		}
	}
	if bestIdx >= 0 && best >= b.cfg.MinFuzzySimilarity {
		setMax(vec, bestIdx, weight)
		return true
	}

	for _, rule := range b.keywords {
		if !strings.Contains(folded, rule.keyword) {
			continue
		}
		for _, idx := range rule.indexes {
			setMax(vec, idx, weight*b.cfg.KeywordWeight)
		}
		return true
	}

	return false
}

func (b *FeatureBuilder) encodeScores(fv *FeatureVector, g catalog.Group, scores map[string]float64) {
	for name, v := range scores {
		idx, ok := b.schema.Index(g, name)
		if !ok {
			fv.Ignored = append(fv.Ignored, g.String()+":"+name)
			continue
		}
		setMax(fv.Values, idx, clamp01(v/7.0))
	}
}

func (b *FeatureBuilder) encodeConstraints(vec []float64, c *Constraints) {
	if idx, ok := b.schema.Index(catalog.GroupConstraint, catalog.ConstraintWage); ok && c.MinWage != nil {
		vec[idx] = clamp01(*c.MinWage / catalog.WageCap)
	}
	if idx, ok := b.schema.Index(catalog.GroupConstraint, catalog.ConstraintRemote); ok && c.RemotePreferred != nil && *c.RemotePreferred {
		vec[idx] = 1
	}
	if idx, ok := b.schema.Index(catalog.GroupConstraint, catalog.ConstraintEducation); ok && c.MaxEducationLevel != nil {
		vec[idx] = clamp01(*c.MaxEducationLevel / 5.0)
	}
}

func setMax(vec []float64, idx int, v float64) {
	if v > vec[idx] {
		vec[idx] = v
	}
}

func lengthRatio(a, b string) float64 {
	la, lb := len(a), len(b)
	if la > lb {
		la, lb = lb, la
	}
	if lb == 0 {
		return 0
	}
	return float64(la) / float64(lb)
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range wordTokens(s) {
		out[t] = struct{}{}
	}
	return out
}

// wordTokens splits lower-cased text on anything that is not a letter or digit.
func wordTokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
