// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package reranking

import "fmt"

// Range is a closed display range for normalized scores.
type Range struct {
	// Min is the score assigned to the lowest raw score in the window.
	Min float64 `json:"min" koanf:"min"`

	// Max is the score assigned to the highest raw score in the window.
	Max float64 `json:"max" koanf:"max"`
}

// Validate checks 0 <= Min <= Max <= 1.
func (r Range) Validate() error {
	if r.Min < 0 || r.Max > 1 || r.Min > r.Max {
		return fmt.Errorf("range must satisfy 0 <= min <= max <= 1, got [%f, %f]", r.Min, r.Max)
	}
	return nil
}

// Transform maps raw scores onto a Range using the bounds of one window.
type Transform struct {
	target    Range
	rawMin    float64
	rawMax    float64
	flatValue float64
	flat      bool
}

// FitWindow fits a transform to the raw scores of the selected window.
//
// A degenerate window (all raw scores equal) maps to target.Max when the
// shared raw score is positive and to target.Min when it is zero, so an
// all-zero profile never displays as a strong match.
func FitWindow(window []float64, target Range) Transform {
	t := Transform{target: target}
	if len(window) == 0 {
		t.flat = true
		t.flatValue = target.Min
		return t
	}

	t.rawMin, t.rawMax = window[0], window[0]
	for _, v := range window[1:] {
		if v < t.rawMin {
			t.rawMin = v
		}
		if v > t.rawMax {
			t.rawMax = v
		}
	}

	if t.rawMax == t.rawMin {
		t.flat = true
		t.flatValue = target.Min
		if t.rawMax > 0 {
			t.flatValue = target.Max
		}
	}

	return t
}

// Apply maps one raw score. Scores inside the fitted window land in the
// target range; scores outside it are clamped to [0, 1].
func (t Transform) Apply(raw float64) float64 {
	if t.flat {
		// Below-window scores keep their distance to the window value.
		return clamp01(t.flatValue - (t.rawMax - raw))
	}
	span := t.target.Max - t.target.Min
	return clamp01(t.target.Min + span*(raw-t.rawMin)/(t.rawMax-t.rawMin))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
