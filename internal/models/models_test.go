// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestAPIResponse_ErrorEnvelope(t *testing.T) {
	t.Parallel()

	resp := &APIResponse{
		Status:   "error",
		Metadata: Metadata{Timestamp: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)},
		Error: &APIError{
			Code:    ErrCodeGuardrail,
			Message: "profile references a protected attribute",
			Details: map[string]interface{}{"signal": "notes (age)"},
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)

	for _, want := range []string{
		`"status":"error"`,
		`"data":null`,
		`"code":"GUARDRAIL_VIOLATION"`,
		`"timestamp":"2026-10-14T12:00:00Z"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("envelope %s missing %s", got, want)
		}
	}
	if strings.Contains(got, "query_time_ms") {
		t.Errorf("envelope %s should omit zero query time", got)
	}
}

func TestAPIResponse_SuccessOmitsError(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(&APIResponse{Status: "success", Data: map[string]int{"n": 1}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), `"error"`) {
		t.Errorf("success envelope %s contains an error field", data)
	}
}
