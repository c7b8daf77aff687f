// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package snapshot holds the read-only bibliographic dataset served by the
// recommendation engine.
//
// # Lifecycle
//
// A source produces a mutable [Data] bundle (concepts, institutions, authors
// with their concept affinity vectors, and raw co-authorship rows). [Build]
// validates the bundle and indexes it into an immutable [Snapshot]:
//
//   - Concept Catalog: id lookup plus prefix (trie) and substring search
//   - Author Profile Store: authors sorted by id with dense indices, vector
//     norms and a concept -> author postings index
//   - Collaboration Graph: undirected, simple, weighted adjacency lists
//
// A [Store] publishes the current snapshot through an atomic pointer. Readers
// call [Store.Current] once per request and use that snapshot end-to-end, so a
// concurrent refresh never mixes two datasets inside one request.
//
// # Edge Weights
//
// Parallel co-authorship rows for the same unordered pair are summed before
// weighting. With [WeightLog1p] (the default) an edge weighs log1p(shared_works).
// Self-loops, edges to unknown authors and non-positive or non-finite weights
// are dropped.
//
// # Thread Safety
//
// A built Snapshot is never mutated. All accessors are safe for concurrent use
// without locking. Values returned by pointer (AuthorAt, Neighbors, Postings)
// alias internal storage and must be treated as read-only.
package snapshot
