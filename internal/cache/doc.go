// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry TTL. The recommendation engine uses it for response caching;
// keys embed the snapshot identity, so a snapshot swap never serves stale
// entries and old ones age out through eviction.
//
//	c := cache.NewLRU[*recommend.Response](1000, 5*time.Minute)
//	c.Add(key, resp)
//	if v, ok := c.Get(key); ok { ... }
package cache
