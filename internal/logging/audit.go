// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package logging

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// AuditEvent is a privacy-relevant event. It never carries profile values.
type AuditEvent struct {
	// Event is the event type, e.g. "guardrail_rejection".
	Event string
	// RequestID correlates the event with the request log.
	RequestID string
	// Signal names the rejected field class and term category.
	Signal string
	// IPAddress is the client's IP address.
	IPAddress string
	// UserAgent is the client's user agent (truncated).
	UserAgent string
	// Details contains additional sanitized details.
	Details map[string]string
}

// AuditLogger writes privacy-relevant events under the "audit" component.
type AuditLogger struct {
	logger zerolog.Logger
}

// NewAuditLogger creates an audit logger on top of logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAuditLogger(logger zerolog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

// LogEvent logs an audit event with sanitized details.
func (l *AuditLogger) LogEvent(event *AuditEvent) {
	e := l.logger.Info().Str("event", event.Event)

	if event.RequestID != "" {
		e = e.Str("request_id", event.RequestID)
	}
	if event.Signal != "" {
		e = e.Str("signal", event.Signal)
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.UserAgent != "" {
		e = e.Str("user_agent", truncateString(event.UserAgent, 100))
	}

	keys := make([]string, 0, len(event.Details))
	for k := range event.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e = e.Str(k, SanitizeValue(k, event.Details[k]))
	}

	e.Msg("")
}

// LogGuardrailRejection records a profile rejected by the demographic screen.
func (l *AuditLogger) LogGuardrailRejection(requestID, signal, ip, userAgent string) {
	l.LogEvent(&AuditEvent{
		Event:     "guardrail_rejection",
		RequestID: requestID,
		Signal:    signal,
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

// SanitizeToken masks a secret, showing only its first and last 4 characters.
// Example: "sk-proj-abcdefghijkl" -> "sk-p...ijkl"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

var sensitiveKeys = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
	"bearer":        true,
	"password":      true,
	"secret":        true,
	"token":         true,
}

// SanitizeValue masks value when key names a secret.
func SanitizeValue(key, value string) string {
	if sensitiveKeys[strings.ToLower(key)] {
		return SanitizeToken(value)
	}
	return value
}

// truncateString truncates a string to a maximum length.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
