// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package llm

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Cache is a TTL key-value cache backed by BadgerDB.
type Cache struct {
	db       *badger.DB
	ttl      time.Duration
	inMemory bool
}

// gcDiscardRatio is the value log discard ratio passed to BadgerDB GC.
const gcDiscardRatio = 0.5

// OpenCache opens a cache at dir, or an in-memory cache when inMemory is true.
func OpenCache(dir string, inMemory bool, ttl time.Duration) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &Cache{db: db, ttl: ttl, inMemory: inMemory}, nil
}

// Get decodes the value stored under key into dst. It reports false when the
// key is absent or expired.
func (c *Cache) Get(key string, dst any) (bool, error) {
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %q: %w", key, err)
	}
	return true, nil
}

// Set stores v under key with the cache TTL.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(c.ttl))
	})
}

// RunGC reclaims value log space left by expired entries. It loops until
// BadgerDB reports nothing left to rewrite. In-memory caches have no value
// log and return immediately.
func (c *Cache) RunGC() error {
	if c.inMemory {
		return nil
	}
	for {
		err := c.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run cache GC: %w", err)
		}
	}
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
