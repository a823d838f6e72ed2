// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"
)

// TypedCache memoizes values derived from the catalog, such as rendered
// markdown or a generated sitemap. Entries share one key namespace so a
// catalog reload can purge them together, and concurrent misses for the
// same id share a single build.
type TypedCache[T any] struct {
	cache     Cacher
	namespace string
	ttl       time.Duration
	builds    singleflight.Group
}

// NewTypedCache creates a TypedCache storing entries as "<namespace>:<id>".
// A zero ttl uses the backend default.
func NewTypedCache[T any](c Cacher, namespace string, ttl time.Duration) *TypedCache[T] {
	return &TypedCache[T]{cache: c, namespace: namespace, ttl: ttl}
}

// Key returns the backend key for id.
func (c *TypedCache[T]) Key(id string) string {
	return c.namespace + ":" + id
}

// Get returns the value for id. Misses, backend errors and undecodable
// values all report false.
func (c *TypedCache[T]) Get(ctx context.Context, id string) (T, bool) {
	var value T
	data, err := c.cache.Get(ctx, c.Key(id))
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false
	}
	return value, true
}

// Set stores value under id.
func (c *TypedCache[T]) Set(ctx context.Context, id string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, c.Key(id), data, c.ttl)
}

// GetOrSet returns the cached value for id, building and storing it on a
// miss. Failed builds are not stored; a failed store does not fail the call.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, id string, build func() (T, error)) (T, error) {
	if value, ok := c.Get(ctx, id); ok {
		return value, nil
	}

	v, err, _ := c.builds.Do(id, func() (any, error) {
		value, err := build()
		if err != nil {
			return nil, err
		}
		_ = c.Set(ctx, id, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Purge removes every entry in the namespace.
func (c *TypedCache[T]) Purge(ctx context.Context) error {
	return c.cache.DeleteByPrefix(ctx, c.namespace+":")
}
