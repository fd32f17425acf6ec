// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestAuditLogger_GuardrailRejection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	audit := NewAuditLogger(NewTestLogger(&buf))
	audit.LogGuardrailRejection("req-1", "notes (age)", "10.0.0.1", strings.Repeat("a", 150))

	output := buf.String()
	for _, want := range []string{
		`"component":"audit"`,
		`"event":"guardrail_rejection"`,
		`"request_id":"req-1"`,
		`"signal":"notes (age)"`,
		`"ip":"10.0.0.1"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
	if strings.Contains(output, strings.Repeat("a", 101)) {
		t.Error("user agent not truncated")
	}
}

func TestAuditLogger_DetailsSanitized(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	audit := NewAuditLogger(NewTestLogger(&buf))
	audit.LogEvent(&AuditEvent{
		Event: "collaborators_enabled",
		Details: map[string]string{
			"api_key":  "sk-proj-abcdefghijklmnop",
			"base_url": "https://api.openai.com/v1",
		},
	})

	output := buf.String()
	if strings.Contains(output, "abcdefghijklmnop") {
		t.Errorf("secret leaked: %s", output)
	}
	if !strings.Contains(output, `"api_key":"sk-p...mnop"`) || !strings.Contains(output, "https://api.openai.com/v1") {
		t.Errorf("output = %s", output)
	}
}

func TestSanitizeToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "***"},
		{"exactly12chr", "***"},
		{"sk-proj-abcdefghijkl", "sk-p...ijkl"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.in); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := SanitizeValue("model", "gpt-4o"); got != "gpt-4o" {
		t.Errorf("SanitizeValue(model) = %q", got)
	}
	if got := SanitizeValue("API_KEY", "sk-proj-abcdefghijkl"); got != "sk-p...ijkl" {
		t.Errorf("SanitizeValue(API_KEY) = %q", got)
	}
}
