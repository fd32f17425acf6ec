// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{name: "recommendations ok", method: "POST", endpoint: "/api/v1/recommendations", statusCode: "200", duration: 15 * time.Millisecond},
		{name: "validation error", method: "POST", endpoint: "/api/v1/features", statusCode: "400", duration: time.Millisecond},
		{name: "not found", method: "GET", endpoint: "/api/v1/occupations/{id}", statusCode: "404", duration: time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("api_requests_total = %v, want %v", after, before+1)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active after dec = %v, want %v", got, before)
	}
}

func TestRecordLLMRequest(t *testing.T) {
	errs := LLMRequestErrors.WithLabelValues("expand_skills_test", "http")
	before := testutil.ToFloat64(errs)

	RecordLLMRequest("expand_skills_test", 200*time.Millisecond, "")
	if got := testutil.ToFloat64(errs); got != before {
		t.Errorf("success counted as error: %v", got)
	}

	RecordLLMRequest("expand_skills_test", 200*time.Millisecond, "http")
	if got := testutil.ToFloat64(errs); got != before+1 {
		t.Errorf("llm_request_errors_total = %v, want %v", got, before+1)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("test_cache"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("test_cache"))

	RecordCacheLookup("test_cache", true)
	RecordCacheLookup("test_cache", false)
	RecordCacheLookup("test_cache", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("test_cache")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("test_cache")); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestSetCatalog(t *testing.T) {
	SetCatalog("2026.01", 10, 40)
	SetCatalog("2026.10", 12, 44)

	if got := testutil.CollectAndCount(CatalogInfo); got != 1 {
		t.Errorf("catalog_info series = %d, want 1 after reload", got)
	}
	if got := testutil.ToFloat64(CatalogInfo.WithLabelValues("2026.10")); got != 1 {
		t.Errorf("catalog_info{version=2026.10} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CatalogOccupations); got != 12 {
		t.Errorf("catalog_occupations = %v, want 12", got)
	}
	if got := testutil.ToFloat64(CatalogDimensions); got != 44 {
		t.Errorf("catalog_dimensions = %v, want 44", got)
	}
}

func TestEngineRecorder(t *testing.T) {
	var r EngineRecorder

	fallback := RecommendScorerFallbacks.WithLabelValues("test_reason")
	collab := RecommendCollaboratorCalls.WithLabelValues("test_collab", "timeout")
	rejected := RecommendGuardrailRejections.WithLabelValues("test_field")
	fb, cb, rb := testutil.ToFloat64(fallback), testutil.ToFloat64(collab), testutil.ToFloat64(rejected)

	r.ObserveRequest("similarity_baseline", 0.01)
	r.ScorerFallback("test_reason")
	r.Collaborator("test_collab", "timeout")
	r.GuardrailRejected("test_field")

	if got := testutil.ToFloat64(fallback); got != fb+1 {
		t.Errorf("scorer fallbacks = %v, want %v", got, fb+1)
	}
	if got := testutil.ToFloat64(collab); got != cb+1 {
		t.Errorf("collaborator calls = %v, want %v", got, cb+1)
	}
	if got := testutil.ToFloat64(rejected); got != rb+1 {
		t.Errorf("guardrail rejections = %v, want %v", got, rb+1)
	}
}

// TestCircuitBreakerMetrics tests circuit breaker metric recording
func TestCircuitBreakerMetrics(t *testing.T) {
	cbName := "llm_test"

	CircuitBreakerState.WithLabelValues(cbName).Set(2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 2 {
		t.Errorf("state = %v, want 2 (open)", got)
	}

	CircuitBreakerRequests.WithLabelValues(cbName, "success").Inc()
	CircuitBreakerRequests.WithLabelValues(cbName, "failure").Inc()
	CircuitBreakerRequests.WithLabelValues(cbName, "rejected").Inc()
	CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(5)
	CircuitBreakerTransitions.WithLabelValues(cbName, "closed", "open").Inc()
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	var r EngineRecorder
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordAPIRequest("POST", "/concurrent", "200", time.Millisecond)
			r.ObserveRequest("learned_model", 0.002)
			RecordCacheLookup("concurrent", true)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/concurrent", "200")); got != 20 {
		t.Errorf("api_requests_total = %v, want 20", got)
	}
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		RecommendRequestDuration,
		RecommendScorerFallbacks,
		RecommendCollaboratorCalls,
		RecommendGuardrailRejections,
		CatalogOccupations,
		CatalogDimensions,
		CatalogInfo,
		LLMRequestDuration,
		LLMRequestErrors,
		CacheHits,
		CacheMisses,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
		AppInfo,
		AppUptime,
	}

	for _, m := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("POST", "/api/v1/recommendations", "200", 25*time.Millisecond)
	}
}
