// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package main is the entry point for the Careerpath server.

Careerpath ranks occupations from a catalog against a user profile of skills,
interests, work values and constraints, and explains each ranking. This
binary serves the engine over HTTP.

# Startup

 1. Configuration: Koanf v2 layering defaults, config.yaml, .env and environment
 2. Logging: zerolog with JSON or console output
 3. Catalog: loaded and validated from CATALOG_PATH (fatal on failure)
 4. Model: optional logistic model from MODEL_PATH (falls back to similarity)
 5. Collaborators: optional language model skill expansion, supplemental
    careers and narrative enhancement when LLM_API_KEY is set
 6. Supervisor tree: suture v4 running the HTTP server and cache GC

# Supervision

	RootSupervisor ("careerpath")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheGCService (persistent expansion cache only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Signals

SIGINT and SIGTERM cancel the root context. Readiness starts failing, the
HTTP server drains for HTTP_SHUTDOWN_TIMEOUT, and the expansion cache is
closed.

# Example

	export CATALOG_PATH=/data/catalog.json
	export MODEL_PATH=/data/model.json
	export LLM_API_KEY=sk-...
	./careerpath-server
*/
package main
