// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims storage space. *llm.Cache satisfies it.
type GarbageCollector interface {
	RunGC() error
}

// CacheGCService periodically runs value log GC on the skill expansion cache.
type CacheGCService struct {
	cache    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheGCService creates a GC service. A non-positive interval uses 10m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheGCService(cache GarbageCollector, interval time.Duration, logger zerolog.Logger) *CacheGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheGCService{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("service", "cache-gc").Logger(),
		name:     "cache-gc",
	}
}

// Serve implements suture.Service. GC failures are logged and retried on the
// next tick; they never restart the service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("cache GC service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			if err := s.cache.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("cache GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("cache GC complete")
		}
	}
}

// String returns the service name for logging.
func (s *CacheGCService) String() string {
	return s.name
}
