// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/careerpath/internal/models"
)

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()

	router, _ := setupTestServer(t, HandlerConfig{})

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"unknown_route", http.MethodGet, "/api/v1/nothing", http.StatusNotFound, models.ErrCodeNotFound},
		{"wrong_method", http.MethodGet, "/api/v1/recommendations", http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, env := doRequest(t, router, tt.method, tt.target, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	router, _ := setupTestServer(t, HandlerConfig{})
	doRequest(t, router, http.MethodGet, "/api/v1/catalog", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestRouter_RequestIDPropagation(t *testing.T) {
	t.Parallel()

	router, _ := setupTestServer(t, HandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set("X-Request-ID", "upstream-abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "upstream-abc-123" {
		t.Errorf("X-Request-ID = %q, want upstream value", got)
	}
}

func TestChiMiddleware_CORS(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddlewareFromSecurity([]string{"https://careers.example.com"}, 10, time.Minute, true)
	router := NewRouter(NewHandler(newTestEngine(t), HandlerConfig{}), mw, nil).Setup()

	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{"allowed_origin", "https://careers.example.com", "https://careers.example.com"},
		{"foreign_origin", "https://evil.example.net", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestChiMiddleware_RateLimit(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddlewareFromSecurity([]string{"*"}, 2, time.Minute, false)
	router := NewRouter(NewHandler(newTestEngine(t), HandlerConfig{}), mw, nil).Setup()

	for i := 0; i < 2; i++ {
		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/catalog", "")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, w.Code)
		}
	}

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/catalog", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if env.Error == nil || env.Error.Code != models.ErrCodeRateLimited {
		t.Errorf("error = %+v", env.Error)
	}

	// Health probes are outside the limited group.
	w, _ = doRequest(t, router, http.MethodGet, "/api/v1/health/live", "")
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}

func TestChiMiddleware_RateLimitDisabled(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddlewareFromSecurity([]string{"*"}, 1, time.Minute, true)
	router := NewRouter(NewHandler(newTestEngine(t), HandlerConfig{}), mw, nil).Setup()

	for i := 0; i < 5; i++ {
		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/catalog", "")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, w.Code)
		}
	}
}
