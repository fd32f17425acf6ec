// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/careerpath/internal/recommend"
)

const (
	maxPromptSkills    = 10
	maxPromptInterests = 3
)

type scored struct {
	name  string
	score float64
}

// rankedScores orders a score map by score descending, then name.
func rankedScores(m map[string]float64) []scored {
	out := make([]scored, 0, len(m))
	for k, v := range m {
		out = append(out, scored{name: k, score: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].name < out[j].name
	})
	return out
}

// profileSummary renders the scored parts of a profile for a prompt. Notes
// and unrecognized constraints are never included.
func profileSummary(p *recommend.UserProfile) string {
	var b strings.Builder

	skills := make([]string, 0, maxPromptSkills)
	for i, s := range p.Skills {
		if i == maxPromptSkills {
			break
		}
		skills = append(skills, s.Name)
	}
	if len(skills) == 0 {
		b.WriteString("Skills: various skills")
	} else {
		b.WriteString("Skills: " + strings.Join(skills, ", "))
	}

	if len(p.Interests) > 0 {
		top := rankedScores(p.Interests)
		if len(top) > maxPromptInterests {
			top = top[:maxPromptInterests]
		}
		parts := make([]string, len(top))
		for i, s := range top {
			parts[i] = fmt.Sprintf("%s (%.1f)", s.name, s.score)
		}
		b.WriteString("\nInterests (RIASEC): " + strings.Join(parts, ", "))
	}

	if len(p.Values) > 0 {
		vals := rankedScores(p.Values)
		parts := make([]string, len(vals))
		for i, s := range vals {
			parts[i] = fmt.Sprintf("%s: %.1f", s.name, s.score)
		}
		b.WriteString("\nWork Values: " + strings.Join(parts, ", "))
	}

	var constraints []string
	if w := p.Constraints.MinWage; w != nil && *w > 0 {
		constraints = append(constraints, fmt.Sprintf("Min wage: $%.0f", *w))
	}
	if r := p.Constraints.RemotePreferred; r != nil && *r {
		constraints = append(constraints, "Remote work preferred")
	}
	if len(constraints) > 0 {
		b.WriteString("\nConstraints: " + strings.Join(constraints, ", "))
	}

	return b.String()
}
