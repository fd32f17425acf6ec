// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/tomtom215/careerpath/internal/recommend"
)

const (
	opGenerateCareers = "generate_careers"

	defaultGeneratedScore = 0.75
	defaultSalaryRange    = "Varies"
	defaultGrowthOutlook  = "Good"
)

const generationSystemPrompt = "You're an expert career advisor who understands modern tech careers, " +
	"traditional careers, and emerging roles. Provide honest, specific recommendations. Return ONLY valid JSON."

// CareerGenerator proposes careers that may be missing from the catalog.
type CareerGenerator struct {
	client *Client
	model  string
	logger zerolog.Logger
}

// NewCareerGenerator creates a generator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCareerGenerator(client *Client, cfg *Config, logger zerolog.Logger) *CareerGenerator {
	return &CareerGenerator{
		client: client,
		model:  cfg.GenerationModel,
		logger: logger.With().Str("component", "career_generator").Logger(),
	}
}

// Generate asks for up to n careers matching the profile.
func (g *CareerGenerator) Generate(ctx context.Context, p *recommend.UserProfile, n int) ([]recommend.GeneratedCareer, error) {
	if n <= 0 {
		return nil, nil
	}

	content, err := g.client.Complete(ctx, CompletionRequest{
		Operation:   opGenerateCareers,
		Model:       g.model,
		System:      generationSystemPrompt,
		User:        generationPrompt(p, n),
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	if err != nil {
		return nil, err
	}

	careers := parseCareers(content)
	if careers == nil {
		return nil, fmt.Errorf("%s: response has no careers array", opGenerateCareers)
	}
	if len(careers) > n {
		careers = careers[:n]
	}

	g.logger.Debug().Int("requested", n).Int("returned", len(careers)).Msg("generated careers")
	return careers, nil
}

// parseCareers reads {"careers": [...]}. It returns nil when the array is
// missing and skips entries without a name.
func parseCareers(content string) []recommend.GeneratedCareer {
	arr := gjson.Get(content, "careers")
	if !arr.IsArray() {
		return nil
	}

	out := []recommend.GeneratedCareer{}
	arr.ForEach(func(_, c gjson.Result) bool {
		name := strings.TrimSpace(c.Get("name").String())
		if name == "" {
			return true
		}

		score := defaultGeneratedScore
		if s := c.Get("score"); s.Type == gjson.Number {
			score = s.Float()
		}

		career := recommend.GeneratedCareer{
			Name:          name,
			Code:          strings.TrimSpace(c.Get("soc_code").String()),
			Score:         clamp01(score),
			Why:           strings.TrimSpace(c.Get("why").String()),
			SalaryRange:   stringOr(c.Get("salary_range"), defaultSalaryRange),
			GrowthOutlook: stringOr(c.Get("growth_outlook"), defaultGrowthOutlook),
		}
		for _, s := range c.Get("key_skills_used").Array() {
			if v := strings.TrimSpace(s.String()); v != "" {
				career.KeySkills = append(career.KeySkills, v)
			}
		}
		out = append(out, career)
		return true
	})
	return out
}

func stringOr(r gjson.Result, fallback string) string {
	if v := strings.TrimSpace(r.String()); v != "" {
		return v
	}
	return fallback
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

func generationPrompt(p *recommend.UserProfile, n int) string {
	return fmt.Sprintf(`You're an expert career advisor. Based on this person's profile, recommend %d careers that would be EXCELLENT matches.

User Profile:
%s

Recommend careers that:
1. Actually USE these specific skills
2. Match their interest profile
3. Align with their work values
4. Meet their constraints
5. Can be MODERN careers (not limited to a traditional occupation taxonomy)

For each career, provide:
- Job title (be specific - "Frontend Developer" not just "Developer")
- Score (0.0-1.0 based on match quality)
- SOC code if it exists, or "MODERN" for newer roles
- Why it's a good match (2-3 sentences, be specific about skills)

Return ONLY valid JSON:
{
  "careers": [
    {
      "name": "Career Title",
      "score": 0.85,
      "soc_code": "15-1252.00",
      "why": "Detailed explanation...",
      "key_skills_used": ["skill1", "skill2"],
      "salary_range": "70k-120k",
      "growth_outlook": "Excellent"
    }
  ]
}

Be honest about fit - don't force matches.`, n, profileSummary(p))
}
