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

	"github.com/tomtom215/careerpath/internal/catalog"
)

// fallbackRationale is used when no dimension clears the contribution threshold.
const fallbackRationale = "This career matches your profile based on overall skill and interest alignment."

// Explainer decomposes a match into per-dimension contributions.
type Explainer struct {
	schema *catalog.DimensionSchema
	cfg    ExplainConfig
}

// NewExplainer creates an explainer for a schema.
func NewExplainer(schema *catalog.DimensionSchema, cfg ExplainConfig) *Explainer {
	return &Explainer{schema: schema, cfg: cfg}
}

// Explain returns the mechanical explanation of user against occupation.
// Confidence is derived from the normalized score.
func (x *Explainer) Explain(user, occupation []float64, normalized float64) *Explanation {
	features := x.TopFeatures(user, occupation)
	return &Explanation{
		TopFeatures: features,
		Rationale:   Rationale(features),
		WhyPoints:   whyPoints(features),
		Confidence:  BandFor(normalized),
	}
}

// TopFeatures returns up to TopK dimensions ranked by |u[i]*o[i]|, ties by
// dimension index, dropping those below MinContribution. It never pads.
func (x *Explainer) TopFeatures(user, occupation []float64) []Feature {
	n := len(user)
	if len(occupation) < n {
		n = len(occupation)
	}

	type contrib struct {
		index int
		value float64
	}
	all := make([]contrib, 0, n)
	for i := 0; i < n; i++ {
		c := user[i] * occupation[i]
		if math.Abs(c) < x.cfg.MinContribution || c == 0 {
			continue
		}
		all = append(all, contrib{index: i, value: c})
	}

	sort.Slice(all, func(i, j int) bool {
		ai, aj := math.Abs(all[i].value), math.Abs(all[j].value)
		if ai != aj {
			return ai > aj
		}
		return all[i].index < all[j].index
	})

	if len(all) > x.cfg.TopK {
		all = all[:x.cfg.TopK]
	}

	features := make([]Feature, len(all))
	for k, c := range all {
		dim := x.schema.Dimension(c.index)
		features[k] = Feature{
			Name:            dim.Name,
			Group:           dim.Group.String(),
			UserValue:       user[c.index],
			OccupationValue: occupation[c.index],
			Contribution:    c.value,
		}
	}
	return features
}

// Rationale builds the templated sentence from the top 1-3 features.
func Rationale(features []Feature) string {
	if len(features) == 0 {
		return fallbackRationale
	}

	names := make([]string, 0, 3)
	for _, f := range features {
		if len(names) == 3 {
			break
		}
		names = append(names, f.Name)
	}

	var list string
	switch len(names) {
	case 1:
		list = names[0]
	default:
		list = strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
	return "Strong alignment in: " + list + "."
}

func whyPoints(features []Feature) []string {
	points := make([]string, 0, len(features))
	for _, f := range features {
		switch f.Group {
		case catalog.GroupSkill.String():
			points = append(points, fmt.Sprintf("Your strength in %s matches a core requirement", f.Name))
		case catalog.GroupInterest.String():
			points = append(points, fmt.Sprintf("Your %s interest fits this work", f.Name))
		case catalog.GroupValue.String():
			points = append(points, fmt.Sprintf("The role supports your %s value", f.Name))
		default:
			points = append(points, fmt.Sprintf("Matches your %s preference", strings.ReplaceAll(f.Name, "_", " ")))
		}
	}
	return points
}

// BandFor maps a normalized score to a confidence band.
func BandFor(normalized float64) ConfidenceBand {
	switch {
	case normalized >= 0.8:
		return ConfidenceHigh
	case normalized >= 0.6:
		return ConfidenceMedium
	case normalized >= 0.4:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}
