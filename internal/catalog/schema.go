// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficientCatalog indicates the catalog is empty or its dimension
// ordering is inconsistent. It is fatal at startup.
var ErrInsufficientCatalog = errors.New("insufficient catalog")

// Group identifies one of the four dimension groups of a feature vector.
type Group int

const (
	// GroupSkill holds skill importance dimensions.
	GroupSkill Group = iota
	// GroupInterest holds the six RIASEC interest dimensions.
	GroupInterest
	// GroupValue holds work value dimensions.
	GroupValue
	// GroupConstraint holds derived constraint signals.
	GroupConstraint
)

// String returns the group name.
func (g Group) String() string {
	switch g {
	case GroupSkill:
		return "skill"
	case GroupInterest:
		return "interest"
	case GroupValue:
		return "value"
	case GroupConstraint:
		return "constraint"
	default:
		return "unknown"
	}
}

// MarshalText encodes the group by name.
func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Constraint dimension names.
const (
	ConstraintWage      = "wage_level"
	ConstraintRemote    = "remote_feasibility"
	ConstraintEducation = "education_level"
)

// DefaultInterests is the RIASEC interest order.
var DefaultInterests = []string{
	"Realistic", "Investigative", "Artistic", "Social", "Enterprising", "Conventional",
}

// DefaultValues is the work value order.
var DefaultValues = []string{
	"Achievement", "Working Conditions", "Recognition", "Relationships", "Support", "Independence",
}

// DefaultConstraints is the constraint feature order.
var DefaultConstraints = []string{ConstraintWage, ConstraintRemote, ConstraintEducation}

// Dimension names one position of a feature vector.
type Dimension struct {
	Group Group  `json:"group"`
	Name  string `json:"name"`
}

// DimensionSchema fixes the order of every dimension in a catalog snapshot.
// User vectors and occupation vectors are aligned by sharing one schema.
type DimensionSchema struct {
	groups  [4][]string
	offsets [4]int
	index   [4]map[string]int // folded name -> position inside group
	length  int
}

// NewDimensionSchema builds a schema from ordered group names.
// Nil interest, value or constraint slices use the defaults. Names must be
// non-empty and unique within their group (case-insensitive).
func NewDimensionSchema(skills, interests, values, constraints []string) (*DimensionSchema, error) {
	if interests == nil {
		interests = DefaultInterests
	}
	if values == nil {
		values = DefaultValues
	}
	if constraints == nil {
		constraints = DefaultConstraints
	}

	s := &DimensionSchema{}
	offset := 0
	for g, names := range [4][]string{skills, interests, values, constraints} {
		idx := make(map[string]int, len(names))
		own := make([]string, len(names))
		for i, name := range names {
			key := Fold(name)
			if key == "" {
				return nil, fmt.Errorf("%w: empty %s dimension name at position %d", ErrInsufficientCatalog, Group(g), i)
			}
			if _, dup := idx[key]; dup {
				return nil, fmt.Errorf("%w: duplicate %s dimension %q", ErrInsufficientCatalog, Group(g), name)
			}
			idx[key] = i
			own[i] = strings.TrimSpace(name)
		}
		s.groups[g] = own
		s.index[g] = idx
		s.offsets[g] = offset
		offset += len(names)
	}
	s.length = offset

	return s, nil
}

// Len returns the total vector length.
func (s *DimensionSchema) Len() int {
	return s.length
}

// Offset returns the index of the first dimension of a group.
func (s *DimensionSchema) Offset(g Group) int {
	return s.offsets[g]
}

// GroupLen returns the number of dimensions in a group.
func (s *DimensionSchema) GroupLen(g Group) int {
	return len(s.groups[g])
}

// Names returns a copy of the ordered names of a group.
func (s *DimensionSchema) Names(g Group) []string {
	out := make([]string, len(s.groups[g]))
	copy(out, s.groups[g])
	return out
}

// Skills returns a copy of the ordered skill dimension names.
func (s *DimensionSchema) Skills() []string {
	return s.Names(GroupSkill)
}

// Index returns the vector index of a named dimension in a group.
func (s *DimensionSchema) Index(g Group, name string) (int, bool) {
	i, ok := s.index[g][Fold(name)]
	if !ok {
		return 0, false
	}
	return s.offsets[g] + i, true
}

// Dimension returns the group and name at a vector index.
func (s *DimensionSchema) Dimension(i int) Dimension {
	for g := GroupConstraint; g >= GroupSkill; g-- {
		if i >= s.offsets[g] && i < s.offsets[g]+len(s.groups[g]) {
			return Dimension{Group: g, Name: s.groups[g][i-s.offsets[g]]}
		}
	}
	return Dimension{Group: -1}
}

// Dimensions returns every dimension in vector order.
func (s *DimensionSchema) Dimensions() []Dimension {
	out := make([]Dimension, 0, s.length)
	for g, names := range s.groups {
		for _, name := range names {
			out = append(out, Dimension{Group: Group(g), Name: name})
		}
	}
	return out
}

// Vector encodes group maps into an aligned vector. Keys are matched
// case-insensitively; an unknown key or a value outside [0,1] is an error.
func (s *DimensionSchema) Vector(skills, interests, values, constraints map[string]float64) ([]float64, error) {
	vec := make([]float64, s.length)
	for g, m := range [4]map[string]float64{skills, interests, values, constraints} {
		for name, v := range m {
			idx, ok := s.Index(Group(g), name)
			if !ok {
				return nil, fmt.Errorf("%w: %s dimension %q not in schema", ErrInsufficientCatalog, Group(g), name)
			}
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("%s dimension %q value %f outside [0,1]", Group(g), name, v)
			}
			vec[idx] = v
		}
	}
	return vec, nil
}

// Equal reports whether two schemas describe the same ordering.
func (s *DimensionSchema) Equal(other *DimensionSchema) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || s.length != other.length {
		return false
	}
	for g := range s.groups {
		if len(s.groups[g]) != len(other.groups[g]) {
			return false
		}
		for i := range s.groups[g] {
			if Fold(s.groups[g][i]) != Fold(other.groups[g][i]) {
				return false
			}
		}
	}
	return true
}

// Fold normalizes a name for comparison: trimmed, lower-cased, inner
// whitespace collapsed.
func Fold(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
