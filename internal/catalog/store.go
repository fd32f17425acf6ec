// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Occupation is one immutable catalog record.
type Occupation struct {
	// ID is the stable identifier.
	ID string `json:"id"`

	// Name is the display title.
	Name string `json:"name"`

	// Code is the SOC code.
	Code string `json:"code,omitempty"`

	// Description is a short summary of the work.
	Description string `json:"description,omitempty"`

	// AlternateTitles lists other titles for the same occupation.
	AlternateTitles []string `json:"alternate_titles,omitempty"`

	// Skills maps skill dimension name to normalized importance (0-1).
	Skills map[string]float64 `json:"skills,omitempty"`

	// Interests maps RIASEC category to normalized score (0-1).
	Interests map[string]float64 `json:"interests,omitempty"`

	// Values maps work value to normalized score (0-1).
	Values map[string]float64 `json:"values,omitempty"`

	// Constraints maps constraint dimension to its derived signal (0-1).
	Constraints map[string]float64 `json:"constraints,omitempty"`

	vector []float64
}

// Vector returns the aligned feature vector. The slice is shared and must
// not be modified.
func (o *Occupation) Vector() []float64 {
	return o.vector
}

// SOCMajorGroup returns the two-digit SOC prefix, or "" when no code is set.
func (o *Occupation) SOCMajorGroup() string {
	if len(o.Code) < 2 {
		return ""
	}
	return o.Code[:2]
}

// Store is the read-only occupation catalog.
type Store struct {
	schema      *DimensionSchema
	occupations []*Occupation
	byID        map[string]*Occupation
	version     string
}

// New builds a store from a schema and occupation records. Records are
// copied, vectorized against the schema and ordered by ID.
//
//nolint:gocritic // hugeParam: occupations are copied once at load
func New(schema *DimensionSchema, occupations []Occupation, version string) (*Store, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: nil dimension schema", ErrInsufficientCatalog)
	}
	if len(occupations) == 0 {
		return nil, fmt.Errorf("%w: no occupations", ErrInsufficientCatalog)
	}

	s := &Store{
		schema:      schema,
		occupations: make([]*Occupation, 0, len(occupations)),
		byID:        make(map[string]*Occupation, len(occupations)),
		version:     version,
	}

	for i := range occupations {
		occ := occupations[i]
		occ.ID = strings.TrimSpace(occ.ID)
		if occ.ID == "" {
			return nil, fmt.Errorf("%w: occupation at position %d has no id", ErrInsufficientCatalog, i)
		}
		if _, dup := s.byID[occ.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate occupation id %q", ErrInsufficientCatalog, occ.ID)
		}

		vec, err := schema.Vector(occ.Skills, occ.Interests, occ.Values, occ.Constraints)
		if err != nil {
			return nil, fmt.Errorf("occupation %q: %w", occ.ID, err)
		}
		occ.vector = vec

		s.occupations = append(s.occupations, &occ)
		s.byID[occ.ID] = &occ
	}

	sort.Slice(s.occupations, func(i, j int) bool {
		return s.occupations[i].ID < s.occupations[j].ID
	})

	return s, nil
}

// Schema returns the dimension schema shared by every vector in the catalog.
func (s *Store) Schema() *DimensionSchema {
	return s.schema
}

// Len returns the number of occupations.
func (s *Store) Len() int {
	return len(s.occupations)
}

// Version returns the catalog snapshot version.
func (s *Store) Version() string {
	return s.version
}

// Get returns an occupation by ID.
func (s *Store) Get(id string) (*Occupation, bool) {
	occ, ok := s.byID[id]
	return occ, ok
}

// Occupations returns every occupation ordered by ID. The returned slice is
// a copy; the records themselves are shared and read-only.
func (s *Store) Occupations() []*Occupation {
	out := make([]*Occupation, len(s.occupations))
	copy(out, s.occupations)
	return out
}
