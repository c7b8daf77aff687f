// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package main is the entry point for the Colaborador IA server.
//
// Colaborador IA recommends research collaborators among Latin American
// authors. A request names topics (a weighted concept vector), a seed
// author, or both; the engine ranks authors by topical similarity, by
// proximity in the co-authorship graph, or by a weighted blend of the two.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml, environment (Koanf v2)
//  2. Snapshot pipeline: source (JSON file or DuckDB) behind a circuit
//     breaker, Badger persistence of the last good dataset, refresher
//  3. Warm start: load from the source, falling back to the persisted copy
//  4. Supervisor tree (suture v4):
//     data layer: refresh scheduler, snapshot file watcher (fsnotify)
//     messaging layer: NATS refresh subscriber (build tag nats)
//     api layer: HTTP server
//
// A failed warm start does not stop the server. /api/health/ready answers
// 503 and recommendation requests fail with SNAPSHOT_UNAVAILABLE until a
// scheduled or triggered refresh succeeds.
//
// # Configuration
//
// Commonly used environment variables:
//
//	HTTP_PORT=8000
//	LOG_LEVEL=info LOG_FORMAT=json
//	SNAPSHOT_SOURCE=file SNAPSHOT_FILE=/data/snapshot.json
//	SNAPSHOT_SOURCE=duckdb DUCKDB_PATH=/data/openalex.duckdb
//	SNAPSHOT_REFRESH_INTERVAL=6h SNAPSHOT_WATCH=true
//	SNAPSHOT_PERSIST_PATH=/data/snapshot-cache
//	RECOMMEND_DEFAULT_ALPHA=0.5 RECOMMEND_DEFAULT_BETA=0.5
//	CORS_ORIGINS=https://colaborador.example
//	NATS_ENABLED=true NATS_URL=nats://127.0.0.1:4222
//
// # Build Tags
//
//	go build ./cmd/server                # HTTP, file and DuckDB sources
//	go build -tags nats ./cmd/server     # plus NATS JetStream refresh triggers
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests for server.shutdown_timeout and the NATS subscriber
// and embedded server are closed.
package main
