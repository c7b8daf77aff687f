// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package recommend implements the hybrid author recommendation engine.
//
// # Architecture
//
// A request is classified by its shape into one of three modes:
//
//   - concepts: content-based (CB) scoring only, cosine similarity between
//     the query concept vector and each author's affinity vector
//   - author: collaborative (CF) scoring only, a bounded walk of the
//     co-authorship graph from the seed author
//   - hybrid: both scorers run in parallel and are blended
//
// Each scorer's raw output is min-max normalized against the other results
// of the same query, so the top author of each model scores 1.0. Hybrid mode
// combines the normalized scores as alpha*cb + beta*cf over the union of both
// result sets. The result pipeline then filters by country, orders by the
// requested key (ties broken by author id) and truncates to the limit.
//
// # Snapshots
//
// All scoring reads an immutable [snapshot.Snapshot] obtained once per
// request from a [SnapshotProvider]. A refresh swaps the whole snapshot, so
// an in-flight request never sees a mix of old and new data.
//
// # Usage
//
//	store := snapshot.NewStore()
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    ConceptVector: []recommend.ConceptWeight{{ID: "C154945302"}},
//	    AuthorID:      "A5023888391",
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. It holds no per-request state;
// the response cache is keyed by snapshot version so a swap never serves
// stale results.
package recommend
