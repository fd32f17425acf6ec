// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"primary": [...], "alternatives": [...], "method": "similarity_baseline"},
//	  "metadata": {
//	    "timestamp": "2026-10-14T12:00:00Z",
//	    "request_id": "7f1c...",
//	    "query_time_ms": 4
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "GUARDRAIL_VIOLATION",
//	    "message": "profile references a protected attribute",
//	    "details": {"signal": "notes (age)"}
//	  },
//	  "metadata": {"timestamp": "2026-10-14T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - RequestID: The X-Request-ID the response belongs to
//   - QueryTimeMS: Handler execution time in milliseconds
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Malformed profile or out-of-range parameter (400)
//   - GUARDRAIL_VIOLATION: Profile references a protected attribute (422)
//   - OCCUPATION_NOT_FOUND: Unknown occupation identifier (404)
//   - RECOMMENDATION_FAILED: Unexpected engine failure (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeGuardrail          = "GUARDRAIL_VIOLATION"
	ErrCodeOccupationNotFound = "OCCUPATION_NOT_FOUND"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	ErrCodeRecommendFailed    = "RECOMMENDATION_FAILED"
	ErrCodeNotReady           = "NOT_READY"
)
