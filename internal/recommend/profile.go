// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/validation"
)

// DefaultImportance is applied to skills given without an importance.
const DefaultImportance = 3.0

// DecodeProfile decodes a JSON profile.
//
// Skills may be a list of names, a list of {"name", "importance"} objects,
// a list of single-entry {"Skill": importance} objects, or one
// {"Skill": importance} object. Unknown top-level fields are recorded in
// UnknownFields and never scored. Unknown constraint keys go to
// Constraints.Extra. Malformed types yield a *ValidationError.
func DecodeProfile(data []byte) (*UserProfile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &UserProfile{}, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &ValidationError{Field: "profile", Reason: "must be a JSON object"}
	}

	p := &UserProfile{}
	keys := sortedKeys(top)
	for _, key := range keys {
		raw := top[key]
		if isNull(raw) {
			continue
		}
		var err error
		switch key {
		case "skills":
			p.Skills, err = decodeSkills(raw)
		case "interests":
			p.Interests, err = decodeScores("interests", raw)
		case "values", "work_values":
			var scores map[string]float64
			scores, err = decodeScores(key, raw)
			p.Values = mergeScores(p.Values, scores)
		case "constraints":
			p.Constraints, err = decodeConstraints(raw)
		case "notes":
			if err = json.Unmarshal(raw, &p.Notes); err != nil {
				err = &ValidationError{Field: "notes", Reason: "must be a string"}
			}
		default:
			p.UnknownFields = append(p.UnknownFields, key)
		}
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// ValidateProfile checks value ranges with the shared validator.
func ValidateProfile(p *UserProfile) error {
	verr := validation.ValidateStruct(p)
	if verr == nil {
		return nil
	}
	first := verr.First()
	return &ValidationError{Field: first.Path(), Reason: first.Error()}
}

func decodeSkills(raw json.RawMessage) ([]SkillInput, error) {
	switch firstByte(raw) {
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, &ValidationError{Field: "skills", Reason: "must be a list or an object of importances"}
		}
		return skillsFromMap("skills", m)
	case '[':
	default:
		return nil, &ValidationError{Field: "skills", Reason: "must be a list or an object of importances"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ValidationError{Field: "skills", Reason: "must be a list"}
	}

	out := make([]SkillInput, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("skills[%d]", i)
		switch firstByte(item) {
		case '"':
			var name string
			if err := json.Unmarshal(item, &name); err != nil {
				return nil, &ValidationError{Field: field, Reason: "must be a string"}
			}
			out = append(out, SkillInput{Name: name, Importance: DefaultImportance})
		case '{':
			var m map[string]json.RawMessage
			if err := json.Unmarshal(item, &m); err != nil {
				return nil, &ValidationError{Field: field, Reason: "must be an object"}
			}
			skills, err := skillFromObject(field, m)
			if err != nil {
				return nil, err
			}
			out = append(out, skills...)
		default:
			return nil, &ValidationError{Field: field, Reason: "must be a skill name or object"}
		}
	}
	return out, nil
}

// skillFromObject accepts {"name": ..., "importance": ...} or {"Skill": n}.
func skillFromObject(field string, m map[string]json.RawMessage) ([]SkillInput, error) {
	nameRaw, hasName := m["name"]
	if !hasName {
		return skillsFromMap(field, m)
	}

	var name string
	if err := json.Unmarshal(nameRaw, &name); err != nil {
		return nil, &ValidationError{Field: field + ".name", Reason: "must be a string"}
	}

	importance := DefaultImportance
	if raw, ok := m["importance"]; ok && !isNull(raw) {
		v, err := decodeNumber(raw)
		if err != nil {
			return nil, &ValidationError{Field: field + ".importance", Reason: "must be a number"}
		}
		importance = v
	}
	return []SkillInput{{Name: name, Importance: importance}}, nil
}

func skillsFromMap(field string, m map[string]json.RawMessage) ([]SkillInput, error) {
	out := make([]SkillInput, 0, len(m))
	for _, name := range sortedKeys(m) {
		importance := DefaultImportance
		if raw := m[name]; !isNull(raw) {
			v, err := decodeNumber(raw)
			if err != nil {
				return nil, &ValidationError{Field: fmt.Sprintf("%s[%s]", field, name), Reason: "importance must be a number"}
			}
			importance = v
		}
		out = append(out, SkillInput{Name: name, Importance: importance})
	}
	return out, nil
}

func decodeScores(field string, raw json.RawMessage) (map[string]float64, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &ValidationError{Field: field, Reason: "must be an object of scores"}
	}
	out := make(map[string]float64, len(m))
	for _, key := range sortedKeys(m) {
		if isNull(m[key]) {
			continue
		}
		v, err := decodeNumber(m[key])
		if err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("%s[%s]", field, key), Reason: "must be a number"}
		}
		out[key] = v
	}
	return out, nil
}

func decodeConstraints(raw json.RawMessage) (Constraints, error) {
	var c Constraints
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return c, &ValidationError{Field: "constraints", Reason: "must be an object"}
	}

	for _, key := range sortedKeys(m) {
		val := m[key]
		if isNull(val) {
			continue
		}
		switch strings.ToLower(key) {
		case "min_wage":
			v, err := decodeNumber(val)
			if err != nil {
				return c, &ValidationError{Field: "constraints.min_wage", Reason: "must be a number"}
			}
			c.MinWage = &v
		case "remote_preferred", "remote":
			var b bool
			if err := json.Unmarshal(val, &b); err != nil {
				return c, &ValidationError{Field: "constraints." + key, Reason: "must be a boolean"}
			}
			c.RemotePreferred = &b
		case "max_education_level", "max_education":
			v, err := decodeNumber(val)
			if err != nil {
				return c, &ValidationError{Field: "constraints." + key, Reason: "must be a number"}
			}
			c.MaxEducationLevel = &v
		default:
			var v any
			if err := json.Unmarshal(val, &v); err != nil {
				return c, &ValidationError{Field: "constraints", Reason: "must be valid JSON"}
			}
			if c.Extra == nil {
				c.Extra = make(map[string]any)
			}
			c.Extra[key] = v
		}
	}
	return c, nil
}

func decodeNumber(raw json.RawMessage) (float64, error) {
	b := firstByte(raw)
	if b != '-' && (b < '0' || b > '9') {
		return 0, fmt.Errorf("not a number")
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func mergeScores(dst, src map[string]float64) map[string]float64 {
	if dst == nil {
		return src
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func firstByte(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// providedGroups counts the input groups the caller filled in.
func providedGroups(p *UserProfile) int {
	n := 0
	if len(p.Skills) > 0 {
		n++
	}
	if len(p.Interests) > 0 {
		n++
	}
	if len(p.Values) > 0 {
		n++
	}
	if !p.Constraints.empty() {
		n++
	}
	if strings.TrimSpace(p.Notes) != "" {
		n++
	}
	return n
}

// assessInput classifies profile completeness.
func assessInput(p *UserProfile, thinGroups int) InputQuality {
	switch n := providedGroups(p); {
	case n == 0:
		return InputEmpty
	case n <= thinGroups:
		return InputThin
	default:
		return InputSufficient
	}
}
