// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type testSkill struct {
	Name       string  `json:"name" validate:"dimkey"`
	Importance float64 `json:"importance" validate:"gte=0,lte=5"`
}

type testProfile struct {
	Skills    []testSkill        `json:"skills" validate:"max=3,dive"`
	Interests map[string]float64 `json:"interests" validate:"dive,keys,dimkey,endkeys,gte=0,lte=7"`
	Notes     string             `json:"notes" validate:"max=20"`
	Internal  string             `json:"-" validate:"omitempty"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    testProfile
		wantPath string
		wantTag  string
	}{
		{
			name: "valid",
			input: testProfile{
				Skills:    []testSkill{{Name: "Programming", Importance: 5}},
				Interests: map[string]float64{"Investigative": 7},
			},
		},
		{
			name:     "importance_too_high",
			input:    testProfile{Skills: []testSkill{{Name: "Writing", Importance: 3}, {Name: "Programming", Importance: 6}}},
			wantPath: "skills[1].importance",
			wantTag:  "lte",
		},
		{
			name:     "blank_skill_name",
			input:    testProfile{Skills: []testSkill{{Name: "   ", Importance: 1}}},
			wantPath: "skills[0].name",
			wantTag:  "dimkey",
		},
		{
			name:     "interest_out_of_range",
			input:    testProfile{Interests: map[string]float64{"Social": -1}},
			wantPath: "interests[Social]",
			wantTag:  "gte",
		},
		{
			name:     "notes_too_long",
			input:    testProfile{Notes: strings.Repeat("x", 21)},
			wantPath: "notes",
			wantTag:  "max",
		},
		{
			name: "too_many_skills",
			input: testProfile{Skills: []testSkill{
				{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
			}},
			wantPath: "skills",
			wantTag:  "max",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)
			if tt.wantPath == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			first := verr.First()
			if first.Path() != tt.wantPath {
				t.Errorf("Path() = %q, want %q", first.Path(), tt.wantPath)
			}
			if first.Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", first.Tag(), tt.wantTag)
			}
			if !strings.HasPrefix(first.Error(), tt.wantPath) {
				t.Errorf("Error() = %q, want prefix %q", first.Error(), tt.wantPath)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		verr := ValidateStruct(&testProfile{Notes: strings.Repeat("x", 30)})
		apiErr := verr.ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if apiErr.Details["field"] != "notes" {
			t.Errorf("Details[field] = %v, want notes", apiErr.Details["field"])
		}
		if _, ok := apiErr.Details["value"]; ok {
			t.Error("Details must not echo the rejected value")
		}
	})

	t.Run("multiple", func(t *testing.T) {
		t.Parallel()
		verr := ValidateStruct(&testProfile{
			Skills: []testSkill{{Name: "", Importance: 9}},
			Notes:  strings.Repeat("x", 30),
		})
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 3 {
			t.Fatalf("Details[fields] = %v, want 3 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "; ") {
			t.Errorf("Message = %q, want joined messages", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q, want Validation failed", apiErr.Message)
		}
	})
}
