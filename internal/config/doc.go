// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package config provides layered configuration loading for Careerpath.

Configuration is merged from four sources, later sources overriding earlier
ones:

 1. Built-in defaults (defaultConfig)
 2. A YAML file named by CONFIG_PATH, or the first of DefaultConfigPaths that exists
 3. A .env file (DOTENV_PATH or ./.env), merged into the process environment
 4. Environment variables with an explicit name mapping

# Configuration Structure

  - Server: HTTP listen address, timeouts and request body limit
  - Catalog: path of the occupation catalog document
  - Model: optional path of the pretrained ranking model
  - Recommend: engine settings (see recommend.Config)
  - LLM: optional language model collaborators (see llm.Config)
  - Logging: level, format, caller
  - Security: CORS origins and inbound rate limiting

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - HTTP_MAX_BODY_BYTES (default: 1MiB)

Data:
  - CATALOG_PATH: catalog JSON (default: /data/catalog.json)
  - MODEL_PATH: logistic model JSON (optional)

Language model collaborators (disabled unless LLM_API_KEY is set):
  - LLM_API_KEY, LLM_BASE_URL
  - LLM_EXPANSION_MODEL, LLM_GENERATION_MODEL, LLM_ENHANCEMENT_MODEL
  - LLM_REQUEST_TIMEOUT, LLM_RATE_LIMIT, LLM_RATE_BURST
  - LLM_BREAKER_MAX_REQUESTS, LLM_BREAKER_INTERVAL, LLM_BREAKER_TIMEOUT,
    LLM_BREAKER_MIN_REQUESTS, LLM_BREAKER_FAILURE_RATIO
  - LLM_CACHE_DIR, LLM_CACHE_IN_MEMORY, LLM_CACHE_TTL, LLM_MIN_CONFIDENCE

Security:
  - CORS_ORIGINS: comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 60 per 1m)
  - DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Engine settings use the RECOMMEND_ prefix, for example
RECOMMEND_DEFAULT_TOP_N, RECOMMEND_ALTERNATIVE_THRESHOLD,
RECOMMEND_DENY_TERMS and RECOMMEND_ENHANCE_TIMEOUT. Map-valued settings such
as the keyword table are only configurable through the YAML file. Map keys
must not contain dots.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(cfg.Server.Addr())
*/
package config
