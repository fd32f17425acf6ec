// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/tomtom215/careerpath/internal/metrics"
)

const breakerName = "llm-api"

var (
	// ErrUpstream is returned for non-2xx chat completion responses.
	ErrUpstream = errors.New("llm upstream error")

	// ErrEmptyCompletion is returned when a response carries no message content.
	ErrEmptyCompletion = errors.New("llm returned no content")
)

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one chat completion call.
type CompletionRequest struct {
	// Operation labels metrics and logs (expand_skills, generate_careers, ...).
	Operation   string
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type chatPayload struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// Client calls an OpenAI-compatible chat completion API. Calls pass through
// a rate limiter and a circuit breaker. Safe for concurrent use.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[string]
	logger  zerolog.Logger
}

// NewClient creates a client from cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg *Config, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "llm").Logger()

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(limit, cfg.RateBurst),
		cb:      newBreaker(cfg.Breaker, logger),
		logger:  logger,
	}
}

// Complete sends req and returns the assistant message content. The model
// is asked for a JSON object response.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordLLMRequest(req.Operation, time.Since(start), "rate_limit")
		return "", fmt.Errorf("%s: rate limiter: %w", req.Operation, err)
	}

	body, err := json.Marshal(chatPayload{
		Model: req.Model,
		Messages: []Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature:    req.Temperature,
		MaxTokens:      req.MaxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", req.Operation, err)
	}

	content, err := c.execute(func() (string, error) {
		return c.post(ctx, body)
	})
	if err != nil {
		metrics.RecordLLMRequest(req.Operation, time.Since(start), errorType(err))
		return "", fmt.Errorf("%s: %w", req.Operation, err)
	}

	metrics.RecordLLMRequest(req.Operation, time.Since(start), "")
	c.logger.Debug().
		Str("operation", req.Operation).
		Str("model", req.Model).
		Dur("latency", time.Since(start)).
		Int("content_length", len(content)).
		Msg("chat completion succeeded")
	return content, nil
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		msg := gjson.GetBytes(resp.Body(), "error.message").String()
		return "", fmt.Errorf("%w: status %d %s", ErrUpstream, resp.StatusCode(), msg)
	}

	content := strings.TrimSpace(gjson.GetBytes(resp.Body(), "choices.0.message.content").String())
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

// State returns the circuit breaker state name.
func (c *Client) State() string {
	return stateToString(c.cb.State())
}

func errorType(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrEmptyCompletion):
		return "empty"
	case errors.Is(err, ErrUpstream):
		return "http"
	default:
		return "transport"
	}
}
