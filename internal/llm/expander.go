// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/careerpath/internal/metrics"
)

const (
	opExpandSkills     = "expand_skills"
	expansionCacheName = "skill_expansion"
	expansionKeyPrefix = "expand:"
)

const expansionSystemPrompt = "You're a career skills expert. Return only valid JSON."

// SkillExpander maps colloquial skill names onto catalog skill dimensions
// with a chat model. Answers are cached per lower-cased skill. Concurrent
// requests for the same batch share one upstream call.
type SkillExpander struct {
	client        *Client
	cache         *Cache
	model         string
	minConfidence float64
	group         singleflight.Group
	logger        zerolog.Logger
}

// NewSkillExpander creates an expander. cache may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSkillExpander(client *Client, cache *Cache, cfg *Config, logger zerolog.Logger) *SkillExpander {
	return &SkillExpander{
		client:        client,
		cache:         cache,
		model:         cfg.ExpansionModel,
		minConfidence: cfg.MinConfidence,
		logger:        logger.With().Str("component", "skill_expander").Logger(),
	}
}

// Expand returns skill -> dimension -> confidence for the given skills.
// Keys are the skill names as given. Dimensions outside dimensions, and
// confidences below the configured minimum, are dropped.
func (x *SkillExpander) Expand(ctx context.Context, skills, dimensions []string) (map[string]map[string]float64, error) {
	known := make(map[string]string, len(dimensions))
	for _, d := range dimensions {
		known[strings.ToLower(d)] = d
	}

	byKey := make(map[string]map[string]float64, len(skills))
	var pending []string
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		key := skillKey(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		if cached, ok := x.lookup(key); ok {
			byKey[key] = cached
			continue
		}
		pending = append(pending, strings.TrimSpace(s))
	}

	if len(pending) > 0 {
		fetched, err := x.fetchShared(ctx, pending, dimensions)
		if err != nil {
			return nil, err
		}
		for k, v := range fetched {
			byKey[k] = v
		}
	}

	out := make(map[string]map[string]float64, len(skills))
	for _, s := range skills {
		mapped := x.filter(byKey[skillKey(s)], known)
		if len(mapped) > 0 {
			out[s] = mapped
		}
	}
	return out, nil
}

func (x *SkillExpander) lookup(key string) (map[string]float64, bool) {
	if x.cache == nil {
		return nil, false
	}
	var cached map[string]float64
	hit, err := x.cache.Get(expansionKeyPrefix+key, &cached)
	if err != nil {
		x.logger.Warn().Err(err).Msg("expansion cache read failed")
		hit = false
	}
	metrics.RecordCacheLookup(expansionCacheName, hit)
	return cached, hit
}

// fetchShared collapses concurrent identical batches into one call. The
// shared call is detached from any single caller's cancellation and bounded
// by the client timeout instead.
func (x *SkillExpander) fetchShared(ctx context.Context, skills, dimensions []string) (map[string]map[string]float64, error) {
	keys := make([]string, len(skills))
	for i, s := range skills {
		keys[i] = skillKey(s)
	}
	sort.Strings(keys)
	batchKey := strings.Join(keys, "\x1f")

	detached := context.WithoutCancel(ctx)
	ch := x.group.DoChan(batchKey, func() (any, error) {
		return x.fetch(detached, skills, dimensions)
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(map[string]map[string]float64), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (x *SkillExpander) fetch(ctx context.Context, skills, dimensions []string) (map[string]map[string]float64, error) {
	content, err := x.client.Complete(ctx, CompletionRequest{
		Operation:   opExpandSkills,
		Model:       x.model,
		System:      expansionSystemPrompt,
		User:        expansionPrompt(skills, dimensions),
		Temperature: 0.3,
		MaxTokens:   800,
	})
	if err != nil {
		return nil, err
	}

	parsed := gjson.Parse(content)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%s: response is not a JSON object", opExpandSkills)
	}

	answers := make(map[string]map[string]float64)
	parsed.ForEach(func(skill, mapping gjson.Result) bool {
		if !mapping.IsObject() {
			return true
		}
		dims := make(map[string]float64)
		mapping.ForEach(func(dim, conf gjson.Result) bool {
			if conf.Type == gjson.Number {
				dims[dim.String()] = conf.Float()
			}
			return true
		})
		answers[skillKey(skill.String())] = dims
		return true
	})

	out := make(map[string]map[string]float64, len(skills))
	for _, s := range skills {
		key := skillKey(s)
		dims := answers[key]
		if dims == nil {
			dims = map[string]float64{}
		}
		out[key] = dims
		if x.cache != nil {
			if err := x.cache.Set(expansionKeyPrefix+key, dims); err != nil {
				x.logger.Warn().Err(err).Msg("expansion cache write failed")
			}
		}
	}

	x.logger.Debug().Int("skills", len(skills)).Int("answered", len(answers)).Msg("expanded skills")
	return out, nil
}

// filter keeps known dimensions at or above the confidence floor, keyed by
// their canonical catalog names.
func (x *SkillExpander) filter(dims map[string]float64, known map[string]string) map[string]float64 {
	out := make(map[string]float64, len(dims))
	for dim, conf := range dims {
		name, ok := known[strings.ToLower(strings.TrimSpace(dim))]
		if !ok || conf < x.minConfidence {
			continue
		}
		if conf > 1 {
			conf = 1
		}
		out[name] = conf
	}
	return out
}

func skillKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func expansionPrompt(skills, dimensions []string) string {
	var b strings.Builder
	b.WriteString("You're a career skills taxonomy expert. Map these user skills to relevant catalog skills.\n\n")
	b.WriteString("User Skills: ")
	b.WriteString(strings.Join(skills, ", "))
	b.WriteString("\n\nAvailable Catalog Skills:\n")
	for _, d := range dimensions {
		b.WriteString("- ")
		b.WriteString(d)
		b.WriteByte('\n')
	}
	b.WriteString(`
For EACH user skill, identify which catalog skills are relevant and assign a confidence score (0.0-1.0).
- 1.0 = Perfect match or primary skill
- 0.7-0.9 = Strong relationship
- 0.5-0.6 = Moderate relationship
- 0.3-0.4 = Weak but relevant relationship
- < 0.3 = Not relevant (don't include)

Return ONLY valid JSON in this format:
{
  "user_skill_name": {"catalog_skill_name": confidence_score},
  "another_user_skill": {"catalog_skill_name": confidence_score}
}`)
	return b.String()
}
