// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"errors"
	"strings"
	"testing"
)

func TestGuardrail_Screen(t *testing.T) {
	t.Parallel()

	g := NewGuardrail(DefaultConfig().Guardrail)

	tests := []struct {
		name       string
		profile    *UserProfile
		wantSignal string
	}{
		{name: "clean", profile: developerProfile()},
		{
			name:    "substring_is_not_a_token",
			profile: &UserProfile{Skills: []SkillInput{{Name: "Management", Importance: 3}, {Name: "Stage design", Importance: 3}}},
		},
		{
			name:       "skill_token",
			profile:    &UserProfile{Skills: []SkillInput{{Name: "Gender studies", Importance: 3}}},
			wantSignal: "skills (gender)",
		},
		{
			name:       "interest_key",
			profile:    &UserProfile{Interests: map[string]float64{"Race relations": 4}},
			wantSignal: "interests (race or ethnicity)",
		},
		{
			name:       "value_key",
			profile:    &UserProfile{Values: map[string]float64{"Religion": 4}},
			wantSignal: "values (religion)",
		},
		{
			name:       "denied_constraint_key",
			profile:    &UserProfile{Constraints: Constraints{Extra: map[string]any{"marital_status": "single"}}},
			wantSignal: "constraints (marital status)",
		},
		{
			name: "nested_constraint_value",
			profile: &UserProfile{Constraints: Constraints{Extra: map[string]any{
				"team": map[string]any{"prefer": []any{"people born after 1990"}},
			}}},
			wantSignal: "constraints (age)",
		},
		{
			name:       "notes_case_insensitive",
			profile:    &UserProfile{Notes: "My AGE should not matter"},
			wantSignal: "notes (age)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := g.Screen(tt.profile)
			if tt.wantSignal == "" {
				if err != nil {
					t.Fatalf("Screen() error = %v, want nil", err)
				}
				return
			}
			var gv *GuardrailViolation
			if !errors.As(err, &gv) {
				t.Fatalf("Screen() error = %v, want GuardrailViolation", err)
			}
			if gv.Signal != tt.wantSignal {
				t.Errorf("Signal = %q, want %q", gv.Signal, tt.wantSignal)
			}
		})
	}
}

func TestGuardrail_ViolationOmitsValue(t *testing.T) {
	t.Parallel()

	g := NewGuardrail(DefaultConfig().Guardrail)
	err := g.Screen(&UserProfile{Notes: "I was born in Springfield"})
	if err == nil {
		t.Fatal("Screen() error = nil")
	}
	if strings.Contains(err.Error(), "Springfield") || strings.Contains(err.Error(), "born") {
		t.Errorf("error %q leaks the input", err.Error())
	}
}

func rankedCandidates(scores ...float64) []Candidate {
	out := make([]Candidate, len(scores))
	for i, s := range scores {
		out[i] = Candidate{
			OccupationID: string(rune('a' + i)),
			Name:         "Occupation " + string(rune('A'+i)),
			RawScore:     s,
			Score:        s,
			Confidence:   BandFor(s),
			Source:       SourceCatalog,
			Explanation:  &Explanation{Confidence: BandFor(s)},
		}
	}
	return out
}

func TestGuardrail_Enforce_MinimumCount(t *testing.T) {
	t.Parallel()

	g := NewGuardrail(DefaultConfig().Guardrail)
	pool := rankedCandidates(0.95, 0.9, 0.85, 0.5)
	rest := pool[1:]

	res := &Result{
		Primary:      []Candidate{pool[0]},
		Alternatives: []Candidate{pool[2]},
		InputQuality: InputSufficient,
	}
	out, err := g.Enforce(developerProfile(), res, rest)
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}

	if len(out.Primary) != 3 {
		t.Fatalf("len(Primary) = %d, want 3", len(out.Primary))
	}
	if out.Primary[1].OccupationID != "b" || out.Primary[2].OccupationID != "c" {
		t.Errorf("fillers = %s, %s, want b, c in rank order", out.Primary[1].OccupationID, out.Primary[2].OccupationID)
	}
	for _, c := range out.Primary[1:] {
		if c.Confidence != ConfidenceLow || c.Explanation.Confidence != ConfidenceLow {
			t.Errorf("%s confidence = %q / %q, want Low", c.OccupationID, c.Confidence, c.Explanation.Confidence)
		}
	}
	if len(out.Alternatives) != 0 {
		t.Errorf("Alternatives = %v, want filler removed", out.Alternatives)
	}
	// The caller's candidates are not modified.
	if rest[0].Fallback || rest[0].Explanation.Confidence != ConfidenceHigh {
		t.Error("Enforce() mutated the ranked remainder")
	}

	want := []string{GuardrailDemographicScreen, GuardrailMinimumCount, GuardrailUncertainty}
	if strings.Join(out.GuardrailsApplied, ",") != strings.Join(want, ",") {
		t.Errorf("GuardrailsApplied = %v, want %v", out.GuardrailsApplied, want)
	}
}

func TestGuardrail_Enforce_Ranges(t *testing.T) {
	t.Parallel()

	g := NewGuardrail(DefaultConfig().Guardrail)

	tests := []struct {
		name    string
		score   float64
		quality InputQuality
		want    [2]float64
	}{
		{name: "high", score: 0.9, quality: InputSufficient, want: [2]float64{0.85, 0.95}},
		{name: "high_clamped", score: 1.0, quality: InputSufficient, want: [2]float64{0.95, 1}},
		{name: "medium", score: 0.7, quality: InputSufficient, want: [2]float64{0.6, 0.8}},
		{name: "low", score: 0.5, quality: InputSufficient, want: [2]float64{0.35, 0.65}},
		{name: "very_low_clamped", score: 0.1, quality: InputSufficient, want: [2]float64{0, 0.3}},
		{name: "thin_widened", score: 0.9, quality: InputThin, want: [2]float64{0.75, 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := rankedCandidates(tt.score, 0.3, 0.2)
			res := &Result{Primary: pool, InputQuality: tt.quality}
			out, err := g.Enforce(&UserProfile{}, res, nil)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			got := out.Primary[0].ScoreRange
			if !approxEqual(got[0], tt.want[0]) || !approxEqual(got[1], tt.want[1]) {
				t.Errorf("ScoreRange = %v, want %v", got, tt.want)
			}
			if widened := containsString(out.GuardrailsApplied, GuardrailThinInput); widened != (tt.quality == InputThin) {
				t.Errorf("thin widening applied = %v", widened)
			}
		})
	}
}

func TestGuardrail_Enforce_Rejects(t *testing.T) {
	t.Parallel()

	g := NewGuardrail(DefaultConfig().Guardrail)
	res := &Result{Primary: rankedCandidates(0.9, 0.8, 0.7)}
	if _, err := g.Enforce(&UserProfile{Notes: "ethnicity"}, res, nil); !IsGuardrail(err) {
		t.Errorf("Enforce() error = %v, want GuardrailViolation", err)
	}
}

func TestGuardrail_DenyTerms(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig().Guardrail
	cfg.DenyTerms = []string{" Zodiac ", "age", ""}
	g := NewGuardrail(cfg)

	terms := g.DenyTerms()
	if strings.Join(terms, ",") != "age,zodiac" {
		t.Errorf("DenyTerms() = %v", terms)
	}
	if err := g.Screen(&UserProfile{Notes: "my zodiac sign"}); err == nil {
		t.Error("custom deny term not enforced")
	}
	if err := g.Screen(&UserProfile{Notes: "gender"}); err != nil {
		t.Errorf("Screen() error = %v, want default terms replaced", err)
	}
}
