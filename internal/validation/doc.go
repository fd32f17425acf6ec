// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator configured for the
// careerpath request types. Field names in errors are taken from the json
// tag, so they match the wire format the caller sent, and nested paths are
// reported relative to the validated struct (for example
// "skills[2].importance").
//
// # Custom Validators
//
//   - dimkey: a profile map key must be non-blank, at most 100 characters
//     and free of control characters
//
// # Error Values
//
// Validation errors never carry the offending value. Profiles are personal
// data; callers get the field path, the failed tag and a message built from
// the tag parameter.
//
// # Quick Start
//
//	if verr := validation.ValidateStruct(&profile); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, verr)
//	    return
//	}
package validation
