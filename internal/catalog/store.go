// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import "sync/atomic"

// Store hands out the active catalog. Swapping is atomic so readers
// never observe a partially loaded catalog.
type Store struct {
	current atomic.Pointer[Catalog]
	version atomic.Uint64
}

// NewStore creates a store holding c.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Get returns the active catalog.
func (s *Store) Get() *Catalog {
	return s.current.Load()
}

// Swap replaces the active catalog and bumps the version.
func (s *Store) Swap(c *Catalog) {
	s.current.Store(c)
	s.version.Add(1)
}

// Version counts successful swaps. Caches key derived views on it.
func (s *Store) Version() uint64 {
	return s.version.Load()
}
