// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed catalog.schema.json
var documentSchema []byte

// WageCap is the annual wage that maps to a wage_level of 1.0.
const WageCap = 200000.0

// DocumentError lists JSON Schema violations of a catalog document.
type DocumentError struct {
	Violations []string
}

// Error implements error.
func (e *DocumentError) Error() string {
	return "catalog document invalid: " + strings.Join(e.Violations, "; ")
}

// Unwrap marks document errors as insufficient catalogs.
func (e *DocumentError) Unwrap() error {
	return ErrInsufficientCatalog
}

type document struct {
	Version    string `json:"version"`
	Dimensions struct {
		Skills      []string `json:"skills"`
		Interests   []string `json:"interests"`
		Values      []string `json:"values"`
		Constraints []string `json:"constraints"`
	} `json:"dimensions"`
	Occupations []occupationRecord `json:"occupations"`
}

type occupationRecord struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Code             string             `json:"code"`
	Description      string             `json:"description"`
	AlternateTitles  []string           `json:"alternate_titles"`
	Skills           map[string]float64 `json:"skills"`
	Interests        map[string]float64 `json:"interests"`
	Values           map[string]float64 `json:"values"`
	Constraints      map[string]float64 `json:"constraints"`
	MedianWage       *float64           `json:"median_wage"`
	RemoteFeasible   *bool              `json:"remote_feasible"`
	TypicalEducation string             `json:"typical_education"`
}

// Load reads and decodes a catalog file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Decode(data)
}

// Decode validates and decodes a catalog document.
func Decode(data []byte) (*Store, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientCatalog, err)
	}
	if !result.Valid() {
		docErr := &DocumentError{}
		for _, v := range result.Errors() {
			docErr.Violations = append(docErr.Violations, v.String())
		}
		return nil, docErr
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientCatalog, err)
	}

	skills := doc.Dimensions.Skills
	if len(skills) == 0 {
		skills = unionSkills(doc.Occupations)
	}
	schema, err := NewDimensionSchema(skills, nilIfEmpty(doc.Dimensions.Interests),
		nilIfEmpty(doc.Dimensions.Values), nilIfEmpty(doc.Dimensions.Constraints))
	if err != nil {
		return nil, err
	}

	occupations := make([]Occupation, 0, len(doc.Occupations))
	for i := range doc.Occupations {
		rec := &doc.Occupations[i]
		constraints := rec.Constraints
		if len(constraints) == 0 {
			constraints = DeriveConstraints(rec.MedianWage, rec.RemoteFeasible, rec.TypicalEducation)
		}
		occupations = append(occupations, Occupation{
			ID:              rec.ID,
			Name:            rec.Name,
			Code:            rec.Code,
			Description:     rec.Description,
			AlternateTitles: rec.AlternateTitles,
			Skills:          rec.Skills,
			Interests:       rec.Interests,
			Values:          rec.Values,
			Constraints:     constraints,
		})
	}

	return New(schema, occupations, doc.Version)
}

// DeriveConstraints computes constraint signals from raw outlook fields.
// Missing fields contribute 0.
func DeriveConstraints(medianWage *float64, remoteFeasible *bool, typicalEducation string) map[string]float64 {
	out := map[string]float64{
		ConstraintWage:      0,
		ConstraintRemote:    0,
		ConstraintEducation: 0,
	}
	if medianWage != nil && *medianWage > 0 {
		out[ConstraintWage] = min(*medianWage/WageCap, 1.0)
	}
	if remoteFeasible != nil && *remoteFeasible {
		out[ConstraintRemote] = 1
	}
	if typicalEducation != "" {
		out[ConstraintEducation] = EducationLevel(typicalEducation) / 5.0
	}
	return out
}

// EducationLevel maps a typical-education label onto the 0-5 scale.
// Unrecognized labels map to 2.5.
func EducationLevel(label string) float64 {
	l := Fold(label)
	switch {
	case strings.Contains(l, "doctoral"), strings.Contains(l, "doctorate"), strings.Contains(l, "phd"):
		return 5
	case strings.Contains(l, "professional"):
		return 4.5
	case strings.Contains(l, "master"):
		return 4
	case strings.Contains(l, "bachelor"):
		return 3
	case strings.Contains(l, "associate"):
		return 2
	case strings.Contains(l, "some college"), strings.Contains(l, "postsecondary"):
		return 1
	case strings.Contains(l, "high school"), strings.Contains(l, "no formal"):
		return 0
	default:
		return 2.5
	}
}

func unionSkills(records []occupationRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range records {
		for name := range records[i].Skills {
			key := Fold(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, strings.TrimSpace(name))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return Fold(out[i]) < Fold(out[j])
	})
	return out
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
