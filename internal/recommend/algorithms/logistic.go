// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package algorithms

import (
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-json"
)

// LogisticModel is a pretrained logistic regression good-match classifier.
// It is the model handle loaded once at startup and never mutated.
type LogisticModel struct {
	version   string
	dimension int
	weights   []float64
	bias      float64
}

type logisticModelFile struct {
	Version   string    `json:"version"`
	Dimension int       `json:"dimension"`
	Weights   []float64 `json:"weights"`
	Bias      float64   `json:"bias"`
}

// NewLogisticModel builds a model for base vectors of the given dimension.
// weights must hold 3*dimension coefficients.
func NewLogisticModel(version string, dimension int, weights []float64, bias float64) (*LogisticModel, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("model dimension must be positive, got %d", dimension)
	}
	if len(weights) != 3*dimension {
		return nil, fmt.Errorf("model expects %d weights for dimension %d, got %d", 3*dimension, dimension, len(weights))
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("model weight %d is not finite", i)
		}
	}

	own := make([]float64, len(weights))
	copy(own, weights)

	return &LogisticModel{
		version:   version,
		dimension: dimension,
		weights:   own,
		bias:      bias,
	}, nil
}

// LoadLogisticModel reads a model file.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	return DecodeLogisticModel(data)
}

// DecodeLogisticModel decodes a JSON model document.
func DecodeLogisticModel(data []byte) (*LogisticModel, error) {
	var f logisticModelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return NewLogisticModel(f.Version, f.Dimension, f.Weights, f.Bias)
}

// Version returns the model version string.
func (m *LogisticModel) Version() string {
	return m.version
}

// Dimension returns the base vector dimension the model was trained on.
func (m *LogisticModel) Dimension() int {
	return m.dimension
}

// PredictProbability returns sigmoid(w·x + b).
func (m *LogisticModel) PredictProbability(features []float64) (float64, error) {
	if len(features) != len(m.weights) {
		return 0, fmt.Errorf("feature length %d, model expects %d", len(features), len(m.weights))
	}

	z := m.bias
	for i, x := range features {
		z += m.weights[i] * x
	}

	return 1.0 / (1.0 + math.Exp(-z)), nil
}
