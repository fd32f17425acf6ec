// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/careerpath/internal/catalog"
	"github.com/tomtom215/careerpath/internal/recommend/algorithms"
)

// OccupationRef identifies an occupation in derived responses.
type OccupationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// SkillRequirement is one skill with its importance in both occupations.
type SkillRequirement struct {
	Name             string  `json:"name"`
	SourceImportance float64 `json:"source_importance"`
	TargetImportance float64 `json:"target_importance"`
}

// SkillOverlap compares the skill profiles of two occupations.
type SkillOverlap struct {
	Source OccupationRef `json:"source"`
	Target OccupationRef `json:"target"`

	// OverlapPercentage is the share of the target's required skills that
	// the source also requires, in [0, 100]. A target with no required
	// skills reports 100.
	OverlapPercentage float64 `json:"overlap_percentage"`

	// Similarity is the cosine similarity of the two skill sub-vectors.
	Similarity float64 `json:"similarity"`

	// SameMajorGroup is true when both SOC codes share a major group.
	SameMajorGroup bool `json:"same_major_group"`

	// TransfersDirectly are skills both occupations require.
	TransfersDirectly []SkillRequirement `json:"transfers_directly"`

	// NeedsLearning are skills the target requires and the source does not.
	NeedsLearning []SkillRequirement `json:"needs_learning"`

	// SourceOnly are skills the source requires and the target does not.
	SourceOnly []SkillRequirement `json:"source_only"`

	// MinImportance is the importance at which a skill counts as required.
	MinImportance float64 `json:"min_importance"`
}

// SkillOverlap compares the skill sub-vectors of two catalog occupations.
func (e *Engine) SkillOverlap(sourceID, targetID string) (*SkillOverlap, error) {
	src, ok := e.store.Get(sourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOccupationNotFound, sourceID)
	}
	dst, ok := e.store.Get(targetID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOccupationNotFound, targetID)
	}
	return computeOverlap(e.store.Schema(), src, dst, e.config.Overlap.MinImportance), nil
}

func computeOverlap(schema *catalog.DimensionSchema, src, dst *catalog.Occupation, minImportance float64) *SkillOverlap {
	off := schema.Offset(catalog.GroupSkill)
	names := schema.Names(catalog.GroupSkill)
	sv := src.Vector()[off : off+len(names)]
	tv := dst.Vector()[off : off+len(names)]

	similarity, _ := algorithms.NewSimilarityScorer().Score(sv, tv) //nolint:errcheck // aligned slices

	out := &SkillOverlap{
		Source:            OccupationRef{ID: src.ID, Name: src.Name, Code: src.Code},
		Target:            OccupationRef{ID: dst.ID, Name: dst.Name, Code: dst.Code},
		Similarity:        round(similarity, 4),
		TransfersDirectly: []SkillRequirement{},
		NeedsLearning:     []SkillRequirement{},
		SourceOnly:        []SkillRequirement{},
		MinImportance:     minImportance,
	}
	if g := src.SOCMajorGroup(); g != "" && g == dst.SOCMajorGroup() {
		out.SameMajorGroup = true
	}

	for i, name := range names {
		req := SkillRequirement{Name: name, SourceImportance: sv[i], TargetImportance: tv[i]}
		srcNeeds, dstNeeds := sv[i] >= minImportance, tv[i] >= minImportance
		switch {
		case srcNeeds && dstNeeds:
			out.TransfersDirectly = append(out.TransfersDirectly, req)
		case dstNeeds:
			out.NeedsLearning = append(out.NeedsLearning, req)
		case srcNeeds:
			out.SourceOnly = append(out.SourceOnly, req)
		}
	}

	byTarget := func(list []SkillRequirement) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].TargetImportance > list[j].TargetImportance
		})
	}
	byTarget(out.TransfersDirectly)
	byTarget(out.NeedsLearning)
	sort.SliceStable(out.SourceOnly, func(i, j int) bool {
		return out.SourceOnly[i].SourceImportance > out.SourceOnly[j].SourceImportance
	})

	required := len(out.TransfersDirectly) + len(out.NeedsLearning)
	out.OverlapPercentage = 100
	if required > 0 {
		out.OverlapPercentage = round(100*float64(len(out.TransfersDirectly))/float64(required), 1)
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
