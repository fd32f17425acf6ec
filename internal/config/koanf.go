// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/careerpath/internal/llm"
	"github.com/tomtom215/careerpath/internal/recommend"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/careerpath/config.yaml",
}

// ConfigPathEnvVar names the environment variable that points at a config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar names the environment variable that points at a .env file.
// When unset, ".env" in the working directory is tried.
const DotEnvPathEnvVar = "DOTENV_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Catalog: CatalogConfig{
			Path: "/data/catalog.json",
		},
		Model: ModelConfig{
			Path: "",
		},
		Recommend: *recommend.DefaultConfig(),
		LLM:       llm.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
	}
}

// LoadWithKoanf loads configuration in layers:
//  1. Built-in defaults
//  2. YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. .env file, merged into the process environment without overriding it
//  4. Environment variables
//
// The merged result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadDotEnv merges a .env file into the process environment. A missing
// file is not an error. Variables already set in the environment win.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// sliceConfigPaths are the keys whose environment values are comma-separated lists.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.ranking.generic_categories",
	"recommend.guardrail.deny_terms",
	"recommend.guardrail.deny_constraint_keys",
	"recommend.supplement.top_generic_terms",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config keys.
var envMappings = map[string]string{
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_max_body_bytes":   "server.max_body_bytes",

	"catalog_path": "catalog.path",
	"model_path":   "model.path",

	"recommend_default_top_n":          "recommend.ranking.default_top_n",
	"recommend_default_alternatives_n": "recommend.ranking.default_alternatives_n",
	"recommend_max_top_n":              "recommend.ranking.max_top_n",
	"recommend_max_alternatives_n":     "recommend.ranking.max_alternatives_n",
	"recommend_alternative_threshold":  "recommend.ranking.alternative_threshold",
	"recommend_generic_categories":     "recommend.ranking.generic_categories",
	"recommend_min_fuzzy_similarity":   "recommend.matching.min_fuzzy_similarity",
	"recommend_keyword_weight":         "recommend.matching.keyword_weight",
	"recommend_explain_top_k":          "recommend.explain.top_k",
	"recommend_explain_min_contrib":    "recommend.explain.min_contribution",
	"recommend_min_recommendations":    "recommend.guardrail.min_recommendations",
	"recommend_deny_terms":             "recommend.guardrail.deny_terms",
	"recommend_deny_constraint_keys":   "recommend.guardrail.deny_constraint_keys",
	"recommend_thin_input_widening":    "recommend.guardrail.thin_input_widening",
	"recommend_thin_input_groups":      "recommend.guardrail.thin_input_groups",
	"recommend_supplement_enabled":     "recommend.supplement.enabled",
	"recommend_supplement_threshold":   "recommend.supplement.threshold",
	"recommend_supplement_count":       "recommend.supplement.count",
	"recommend_top_generic_terms":      "recommend.supplement.top_generic_terms",
	"recommend_expand_timeout":         "recommend.collaborators.expand_timeout",
	"recommend_generate_timeout":       "recommend.collaborators.generate_timeout",
	"recommend_enhance_timeout":        "recommend.collaborators.enhance_timeout",
	"recommend_max_concurrent_enhance": "recommend.collaborators.max_concurrent_enhance",
	"recommend_enhance_alternatives":   "recommend.collaborators.enhance_alternatives",
	"recommend_low_score_trigger":      "recommend.normalization.low_score_trigger",
	"recommend_overlap_min_importance": "recommend.overlap.min_importance",

	"llm_api_key":               "llm.api_key",
	"llm_base_url":              "llm.base_url",
	"llm_expansion_model":       "llm.expansion_model",
	"llm_generation_model":      "llm.generation_model",
	"llm_enhancement_model":     "llm.enhancement_model",
	"llm_request_timeout":       "llm.request_timeout",
	"llm_rate_limit":            "llm.rate_limit",
	"llm_rate_burst":            "llm.rate_burst",
	"llm_breaker_max_requests":  "llm.breaker.max_requests",
	"llm_breaker_interval":      "llm.breaker.interval",
	"llm_breaker_timeout":       "llm.breaker.timeout",
	"llm_breaker_min_requests":  "llm.breaker.min_requests",
	"llm_breaker_failure_ratio": "llm.breaker.failure_ratio",
	"llm_cache_dir":             "llm.cache_dir",
	"llm_cache_in_memory":       "llm.cache_in_memory",
	"llm_cache_ttl":             "llm.cache_ttl",
	"llm_min_confidence":        "llm.min_confidence",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
}

// envTransformFunc maps an environment variable name to its config key.
// Unmapped variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
