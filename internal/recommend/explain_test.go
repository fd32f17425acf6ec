// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"strings"
	"testing"

	"github.com/tomtom215/careerpath/internal/catalog"
)

func newTestExplainer(t *testing.T) (*Explainer, *catalog.DimensionSchema) {
	t.Helper()
	schema, err := catalog.NewDimensionSchema(
		[]string{"Programming", "Writing", "Mathematics"},
		[]string{"Investigative", "Social"},
		[]string{"Achievement"},
		[]string{catalog.ConstraintRemote},
	)
	if err != nil {
		t.Fatalf("NewDimensionSchema() error = %v", err)
	}
	return NewExplainer(schema, ExplainConfig{TopK: 3, MinContribution: 0.1}), schema
}

func TestExplainer_TopFeatures(t *testing.T) {
	t.Parallel()

	x, _ := newTestExplainer(t)

	//                   Prog Writ Math Inv  Soc  Ach  Remote
	user := []float64{1.0, 0.5, 0.5, 0.8, 0.0, 0.3, 1.0}
	occ := []float64{0.9, 0.6, 0.6, 0.9, 0.9, 0.2, 1.0}
	// Contributions: 0.9, 0.3, 0.3, 0.72, 0, 0.06, 1.0

	features := x.TopFeatures(user, occ)
	if len(features) != 3 {
		t.Fatalf("len(features) = %d, want 3", len(features))
	}

	wantNames := []string{catalog.ConstraintRemote, "Programming", "Investigative"}
	for i, want := range wantNames {
		if features[i].Name != want {
			t.Errorf("features[%d] = %s, want %s", i, features[i].Name, want)
		}
	}
	if features[0].Group != "constraint" || features[1].Group != "skill" || features[2].Group != "interest" {
		t.Errorf("groups = %s, %s, %s", features[0].Group, features[1].Group, features[2].Group)
	}
	if features[1].UserValue != 1.0 || features[1].OccupationValue != 0.9 || !approxEqual(features[1].Contribution, 0.9) {
		t.Errorf("Programming feature = %+v", features[1])
	}
}

func TestExplainer_TopFeatures_TiesByIndex(t *testing.T) {
	t.Parallel()

	x, _ := newTestExplainer(t)
	user := []float64{0, 0.5, 0.5, 0, 0, 0, 0}
	occ := []float64{0, 0.5, 0.5, 0, 0, 0, 0}

	features := x.TopFeatures(user, occ)
	if len(features) != 2 {
		t.Fatalf("len(features) = %d, want 2", len(features))
	}
	if features[0].Name != "Writing" || features[1].Name != "Mathematics" {
		t.Errorf("order = %s, %s, want Writing then Mathematics", features[0].Name, features[1].Name)
	}
}

func TestExplainer_TopFeatures_NoPadding(t *testing.T) {
	t.Parallel()

	x, _ := newTestExplainer(t)
	user := []float64{0.2, 0, 0, 0, 0, 0, 0}
	occ := []float64{0.2, 1, 1, 1, 1, 1, 1}

	if features := x.TopFeatures(user, occ); len(features) != 0 {
		t.Errorf("TopFeatures() = %+v, want none below the contribution threshold", features)
	}
}

func TestRationale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		features []Feature
		want     string
	}{
		{name: "none", features: nil, want: fallbackRationale},
		{name: "one", features: []Feature{{Name: "A"}}, want: "Strong alignment in: A."},
		{name: "two", features: []Feature{{Name: "A"}, {Name: "B"}}, want: "Strong alignment in: A and B."},
		{
			name:     "four_uses_three",
			features: []Feature{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}},
			want:     "Strong alignment in: A, B and C.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Rationale(tt.features); got != tt.want {
				t.Errorf("Rationale() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExplainer_Explain(t *testing.T) {
	t.Parallel()

	x, _ := newTestExplainer(t)
	exp := x.Explain(
		[]float64{1, 0, 0, 0, 0, 0.9, 1},
		[]float64{0.9, 0, 0, 0, 0, 0.8, 1},
		0.65,
	)

	if exp.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %q, want Med", exp.Confidence)
	}
	if exp.Enhanced {
		t.Error("mechanical explanation marked enhanced")
	}
	if len(exp.WhyPoints) != len(exp.TopFeatures) {
		t.Fatalf("len(WhyPoints) = %d, want %d", len(exp.WhyPoints), len(exp.TopFeatures))
	}
	wantPrefixes := []string{"Matches your remote feasibility", "Your strength in Programming", "The role supports your Achievement"}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(exp.WhyPoints[i], prefix) {
			t.Errorf("WhyPoints[%d] = %q, want prefix %q", i, exp.WhyPoints[i], prefix)
		}
	}
}

func TestBandFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  ConfidenceBand
	}{
		{1.0, ConfidenceHigh},
		{0.8, ConfidenceHigh},
		{0.79, ConfidenceMedium},
		{0.6, ConfidenceMedium},
		{0.59, ConfidenceLow},
		{0.4, ConfidenceLow},
		{0.39, ConfidenceVeryLow},
		{0, ConfidenceVeryLow},
	}
	for _, tt := range tests {
		if got := BandFor(tt.score); got != tt.want {
			t.Errorf("BandFor(%f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
