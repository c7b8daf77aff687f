// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

/*
Package config loads and validates service configuration.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. YAML file: $CONFIG_PATH, ./config.yaml or /etc/colaborador/config.yaml
 3. Environment variables listed in envMappings

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 8000), HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development, staging or production

Snapshot:
  - SNAPSHOT_SOURCE: file (default) or duckdb
  - SNAPSHOT_FILE: JSON bundle path for the file source
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY: database for the duckdb source
  - SNAPSHOT_REFRESH_INTERVAL: periodic rebuild (0 disables)
  - SNAPSHOT_WATCH: rebuild when SNAPSHOT_FILE changes
  - SNAPSHOT_PERSIST_PATH: Badger directory for the last good snapshot

Recommendation:
  - RECOMMEND_DEFAULT_ALPHA, RECOMMEND_DEFAULT_BETA
  - RECOMMEND_NUM_HOPS, RECOMMEND_DECAY_FACTOR, RECOMMEND_MAX_FRONTIER
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated list

NATS (binaries built with -tags nats):
  - NATS_ENABLED, NATS_URL, NATS_EMBEDDED, NATS_SUBJECT

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
