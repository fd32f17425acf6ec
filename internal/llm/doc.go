// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package llm implements the optional recommendation collaborators on top of an
OpenAI-compatible chat completion API.

# Collaborators

  - SkillExpander maps colloquial skills ("writing code") onto catalog skill
    dimensions with confidences. Answers are cached per lower-cased skill in
    BadgerDB with a TTL, and concurrent identical batches share one call.
  - CareerGenerator proposes careers missing from the catalog.
  - NarrativeEnhancer rewrites a mechanical rationale as prose.

All three share a Client. Each call waits on a token bucket rate limiter and
passes through a circuit breaker whose state is exported as
circuit_breaker_state{name="llm-api"}. Every request asks for a JSON object
response; the message content is read with gjson.

# Usage

	collabs, err := llm.New(&cfg.LLM, logger)
	if err != nil {
	    return err
	}
	if collabs != nil {
	    defer collabs.Close()
	    collabs.Attach(engine)
	}

New returns nil when no API key is configured, and the engine keeps its
mechanical paths. The engine bounds every collaborator call with its own
timeout and treats any failure as "no result".
*/
package llm
