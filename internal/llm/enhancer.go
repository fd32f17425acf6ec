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

const opEnhanceNarrative = "enhance_narrative"

const enhancementSystemPrompt = "You're a career counselor. Explain recommendations warmly and concretely " +
	"using only the evidence provided. Never mention age, gender, race, religion or other personal " +
	"characteristics. Return ONLY valid JSON."

// NarrativeEnhancer rewrites a mechanical rationale as a short paragraph.
type NarrativeEnhancer struct {
	client *Client
	model  string
	logger zerolog.Logger
}

// NewNarrativeEnhancer creates an enhancer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewNarrativeEnhancer(client *Client, cfg *Config, logger zerolog.Logger) *NarrativeEnhancer {
	return &NarrativeEnhancer{
		client: client,
		model:  cfg.EnhancementModel,
		logger: logger.With().Str("component", "narrative_enhancer").Logger(),
	}
}

// Enhance returns the rewritten rationale, or an empty string when the
// model produced none.
func (e *NarrativeEnhancer) Enhance(ctx context.Context, req recommend.EnhanceRequest) (string, error) {
	content, err := e.client.Complete(ctx, CompletionRequest{
		Operation:   opEnhanceNarrative,
		Model:       e.model,
		System:      enhancementSystemPrompt,
		User:        enhancementPrompt(&req),
		Temperature: 0.5,
		MaxTokens:   300,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(gjson.Get(content, "explanation").String()), nil
}

func enhancementPrompt(req *recommend.EnhanceRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Occupation: %s", req.OccupationName)
	if req.OccupationCode != "" {
		fmt.Fprintf(&b, " (%s)", req.OccupationCode)
	}
	fmt.Fprintf(&b, "\nMatch score: %.2f\n", req.NormalizedScore)

	if req.Profile != nil {
		b.WriteString("\n" + profileSummary(req.Profile) + "\n")
	}

	if len(req.TopFeatures) > 0 {
		b.WriteString("\nStrongest matching factors:\n")
		for _, f := range req.TopFeatures {
			fmt.Fprintf(&b, "- %s (%s): user %.2f, occupation %.2f\n", f.Name, f.Group, f.UserValue, f.OccupationValue)
		}
	}

	fmt.Fprintf(&b, "\nCurrent explanation: %s\n", req.MechanicalRationale)
	b.WriteString(`
Rewrite the explanation as 2-3 encouraging sentences that reference the matching factors above.
Do not invent qualifications or salaries.

Return ONLY valid JSON: {"explanation": "..."}`)
	return b.String()
}
