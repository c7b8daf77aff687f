// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package snapshot

import (
	"sync/atomic"
)

// Store publishes the current snapshot. The zero value is ready to use and
// holds no snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
	swaps   atomic.Int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the active snapshot, or nil before the first load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Loaded reports whether a snapshot has been published.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}

// Swap publishes next and returns the snapshot it replaced (nil on first load).
// A nil next is ignored.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	if next == nil {
		return s.current.Load()
	}
	s.swaps.Add(1)
	return s.current.Swap(next)
}

// Swaps returns how many snapshots have been published.
func (s *Store) Swaps() int64 {
	return s.swaps.Load()
}
