// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package reranking

import "strings"

// KeywordMatcher matches text against a fixed list of lower-cased terms.
type KeywordMatcher struct {
	terms []string
}

// NewKeywordMatcher builds a matcher. Empty terms are dropped.
func NewKeywordMatcher(terms []string) *KeywordMatcher {
	m := &KeywordMatcher{terms: make([]string, 0, len(terms))}
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			m.terms = append(m.terms, t)
		}
	}
	return m
}

// Match returns the first term contained in text, case-insensitively.
func (m *KeywordMatcher) Match(text string) (string, bool) {
	if m == nil {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, t := range m.terms {
		if strings.Contains(lower, t) {
			return t, true
		}
	}
	return "", false
}

// Terms returns a copy of the matcher's terms.
func (m *KeywordMatcher) Terms() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// Entry is a ranked candidate as seen by the alternatives filter.
type Entry struct {
	Name       string
	Normalized float64
}

// SelectAlternatives returns the indexes of up to n entries, in input order,
// that score at least threshold and whose name is not generic.
// entries are expected to be in final ranked order after the primaries.
func SelectAlternatives(entries []Entry, n int, threshold float64, generic *KeywordMatcher) []int {
	if n <= 0 {
		return nil
	}

	out := make([]int, 0, n)
	for i, e := range entries {
		if len(out) == n {
			break
		}
		if e.Normalized < threshold {
			continue
		}
		if _, ok := generic.Match(e.Name); ok {
			continue
		}
		out = append(out, i)
	}
	return out
}
