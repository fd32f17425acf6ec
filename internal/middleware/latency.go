// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EndpointStats contains latency statistics for one route over the
// tracker's window.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        int64   `json:"p50_ms"`
	P95MS        int64   `json:"p95_ms"`
	P99MS        int64   `json:"p99_ms"`
	MaxMS        int64   `json:"max_ms"`
}

// window is a fixed-size ring of recent request durations.
type window struct {
	durations []int64
	next      int
	full      bool
	total     int64
	errors    int64
}

func (w *window) add(ms int64) {
	w.durations[w.next] = ms
	w.next++
	if w.next == len(w.durations) {
		w.next = 0
		w.full = true
	}
	w.total++
}

func (w *window) samples() []int64 {
	n := w.next
	if w.full {
		n = len(w.durations)
	}
	out := make([]int64, n)
	copy(out, w.durations[:n])
	return out
}

// LatencyTracker keeps a bounded per-route window of request latencies and
// warns about requests slower than a threshold.
type LatencyTracker struct {
	mu        sync.Mutex
	size      int
	slow      time.Duration
	endpoints map[string]*window
	logger    zerolog.Logger
}

// NewLatencyTracker creates a tracker holding up to size samples per route.
// A slow threshold of zero disables slow-request warnings.
func NewLatencyTracker(size int, slow time.Duration, logger zerolog.Logger) *LatencyTracker {
	if size <= 0 {
		size = 1000
	}
	return &LatencyTracker{
		size:      size,
		slow:      slow,
		endpoints: make(map[string]*window),
		logger:    logger.With().Str("component", "latency").Logger(),
	}
}

// Record adds one request sample.
func (lt *LatencyTracker) Record(method, endpoint string, d time.Duration, statusCode int) {
	key := method + " " + endpoint

	lt.mu.Lock()
	w, ok := lt.endpoints[key]
	if !ok {
		w = &window{durations: make([]int64, lt.size)}
		lt.endpoints[key] = w
	}
	w.add(d.Milliseconds())
	if statusCode >= http.StatusInternalServerError {
		w.errors++
	}
	lt.mu.Unlock()

	if lt.slow > 0 && d > lt.slow {
		lt.logger.Warn().
			Str("method", method).
			Str("endpoint", endpoint).
			Int64("duration_ms", d.Milliseconds()).
			Int64("threshold_ms", lt.slow.Milliseconds()).
			Msg("Slow request detected")
	}
}

// Stats returns statistics for every route seen, busiest first.
func (lt *LatencyTracker) Stats() []EndpointStats {
	lt.mu.Lock()
	stats := make([]EndpointStats, 0, len(lt.endpoints))
	for key, w := range lt.endpoints {
		sorted := w.samples()
		if len(sorted) == 0 {
			continue
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, d := range sorted {
			sum += d
		}
		stats = append(stats, EndpointStats{
			Endpoint:     key,
			RequestCount: w.total,
			ErrorCount:   w.errors,
			AvgMS:        float64(sum) / float64(len(sorted)),
			P50MS:        percentile(sorted, 0.50),
			P95MS:        percentile(sorted, 0.95),
			P99MS:        percentile(sorted, 0.99),
			MaxMS:        sorted[len(sorted)-1],
		})
	}
	lt.mu.Unlock()

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// Middleware records the latency of every request under its route pattern.
func (lt *LatencyTracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		lt.Record(r.Method, RoutePattern(r), time.Since(start), wrapper.statusCode)
	})
}

// percentile returns the nearest-rank value of a sorted slice
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}
