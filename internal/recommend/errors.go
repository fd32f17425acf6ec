// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrOccupationNotFound is returned by Explain for an unknown occupation id.
	ErrOccupationNotFound = errors.New("occupation not found")

	// ErrCollaboratorTimeout is recorded when an optional collaborator
	// exceeds its deadline. It is never returned to callers.
	ErrCollaboratorTimeout = fmt.Errorf("collaborator timeout: %w", context.DeadlineExceeded)
)

// ValidationError reports malformed profile input. The caller should fix
// the input and retry.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid profile: " + e.Reason
	}
	return fmt.Sprintf("invalid profile: %s: %s", e.Field, e.Reason)
}

// GuardrailViolation reports a disallowed demographic signal. Signal names
// the field class and term category, never the offending value.
type GuardrailViolation struct {
	Signal string `json:"signal"`
}

func (e *GuardrailViolation) Error() string {
	return "profile rejected: demographic signal in " + e.Signal
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsGuardrail reports whether err is a GuardrailViolation.
func IsGuardrail(err error) bool {
	var g *GuardrailViolation
	return errors.As(err, &g)
}

// collaboratorError classifies a collaborator failure: deadline errors
// become ErrCollaboratorTimeout, anything else is kept.
func collaboratorError(name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", name, ErrCollaboratorTimeout)
	}
	return fmt.Errorf("%s: %w", name, err)
}
