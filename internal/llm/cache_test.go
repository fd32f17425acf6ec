// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package llm

import (
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache("", true, time.Hour)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() }) //nolint:errcheck // test cleanup
	return c
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)

	want := map[string]float64{"Programming": 0.9, "Mathematics": 0.5}
	if err := c.Set("expand:python", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got map[string]float64
	hit, err := c.Get("expand:python", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Fatal("Get() hit = false")
	}
	if len(got) != 2 || got["Programming"] != 0.9 || got["Mathematics"] != 0.5 {
		t.Errorf("Get() = %v, want %v", got, want)
	}
}

func TestCache_Miss(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)

	var got map[string]float64
	hit, err := c.Get("expand:missing", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("Get() hit = true for a missing key")
	}
}

func TestCache_Overwrite(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	if err := c.Set("k", map[string]float64{"A": 1}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set("k", map[string]float64{}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got map[string]float64
	if hit, err := c.Get("k", &got); err != nil || !hit {
		t.Fatalf("Get() = %v, %v", hit, err)
	}
	if len(got) != 0 {
		t.Errorf("Get() = %v, want the empty overwrite", got)
	}
}

func TestCache_Persistent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := OpenCache(dir, false, time.Hour)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	if err := c.Set("expand:writing", map[string]float64{"Writing": 1}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenCache(dir, false, time.Hour)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }() //nolint:errcheck // test cleanup

	var got map[string]float64
	if hit, err := reopened.Get("expand:writing", &got); err != nil || !hit {
		t.Fatalf("Get() after reopen = %v, %v", hit, err)
	}
	if got["Writing"] != 1 {
		t.Errorf("Get() = %v", got)
	}
}

func TestCache_RunGC(t *testing.T) {
	t.Parallel()

	t.Run("in_memory", func(t *testing.T) {
		t.Parallel()
		if err := newTestCache(t).RunGC(); err != nil {
			t.Errorf("RunGC() error = %v", err)
		}
	})

	t.Run("persistent", func(t *testing.T) {
		t.Parallel()
		c, err := OpenCache(t.TempDir(), false, time.Hour)
		if err != nil {
			t.Fatalf("OpenCache() error = %v", err)
		}
		defer func() { _ = c.Close() }() //nolint:errcheck // test cleanup

		if err := c.Set("expand:python", map[string]float64{"Programming": 1}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := c.RunGC(); err != nil {
			t.Errorf("RunGC() error = %v", err)
		}
	})
}
