// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package logging provides centralized zerolog-based structured logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("collaborator failed")
//
// Components take a zerolog.Logger and derive their own child logger:
//
//	logger := logging.WithComponent("engine")
//
// # Request Context
//
// The HTTP middleware stores request_id and correlation_id in the request
// context. Ctx and CtxWith add both to every event.
//
// # Privacy
//
// Profile values are never logged. Log counts and dimension names instead.
// AuditLogger records guardrail rejections by field class only, and
// SanitizeToken masks secrets such as the LLM API key.
//
// # slog Bridge
//
// SlogHandler lets slog consumers such as sutureslog write through zerolog:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
