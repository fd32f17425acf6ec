// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func TestLatencyTracker_Stats(t *testing.T) {
	t.Parallel()

	lt := NewLatencyTracker(100, 0, zerolog.Nop())
	for i := 1; i <= 100; i++ {
		lt.Record(http.MethodPost, "/api/v1/recommendations", time.Duration(i)*time.Millisecond, http.StatusOK)
	}
	lt.Record(http.MethodGet, "/api/v1/catalog", 5*time.Millisecond, http.StatusInternalServerError)

	stats := lt.Stats()
	if len(stats) != 2 {
		t.Fatalf("len(Stats()) = %d, want 2", len(stats))
	}

	rec := stats[0]
	if rec.Endpoint != "POST /api/v1/recommendations" {
		t.Errorf("busiest endpoint = %q", rec.Endpoint)
	}
	if rec.RequestCount != 100 || rec.ErrorCount != 0 {
		t.Errorf("counts = %d / %d", rec.RequestCount, rec.ErrorCount)
	}
	if rec.P50MS != 50 || rec.P95MS != 95 || rec.P99MS != 99 || rec.MaxMS != 100 {
		t.Errorf("percentiles = p50 %d p95 %d p99 %d max %d", rec.P50MS, rec.P95MS, rec.P99MS, rec.MaxMS)
	}
	if rec.AvgMS != 50.5 {
		t.Errorf("AvgMS = %v, want 50.5", rec.AvgMS)
	}
	if stats[1].ErrorCount != 1 {
		t.Errorf("catalog ErrorCount = %d, want 1", stats[1].ErrorCount)
	}
}

func TestLatencyTracker_WindowWraps(t *testing.T) {
	t.Parallel()

	lt := NewLatencyTracker(3, 0, zerolog.Nop())
	for _, ms := range []int{500, 500, 500, 1, 2, 3} {
		lt.Record(http.MethodGet, "/x", time.Duration(ms)*time.Millisecond, http.StatusOK)
	}

	stats := lt.Stats()
	if len(stats) != 1 {
		t.Fatalf("len(Stats()) = %d, want 1", len(stats))
	}
	if stats[0].RequestCount != 6 {
		t.Errorf("RequestCount = %d, want lifetime total 6", stats[0].RequestCount)
	}
	if stats[0].MaxMS != 3 {
		t.Errorf("MaxMS = %d, want old samples evicted", stats[0].MaxMS)
	}
}

func TestLatencyTracker_SlowWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lt := NewLatencyTracker(10, 100*time.Millisecond, zerolog.New(&buf))

	lt.Record(http.MethodGet, "/fast", 10*time.Millisecond, http.StatusOK)
	if buf.Len() != 0 {
		t.Errorf("fast request logged: %s", buf.String())
	}
	lt.Record(http.MethodGet, "/slow", 250*time.Millisecond, http.StatusOK)
	if !strings.Contains(buf.String(), "Slow request detected") || !strings.Contains(buf.String(), `"endpoint":"/slow"`) {
		t.Errorf("slow request log = %s", buf.String())
	}
}

func TestLatencyTracker_Middleware(t *testing.T) {
	t.Parallel()

	lt := NewLatencyTracker(10, 0, zerolog.Nop())
	r := chi.NewRouter()
	r.Use(lt.Middleware)
	r.Get("/occupations/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/occupations/"+id, nil))
	}

	stats := lt.Stats()
	if len(stats) != 1 || stats[0].Endpoint != "GET /occupations/{id}" || stats[0].RequestCount != 2 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats[0].ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 4xx not counted", stats[0].ErrorCount)
	}
}
