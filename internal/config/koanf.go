// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/colaborador/config.yaml",
	"/etc/colaborador/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, applied before file and env.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Snapshot: SnapshotConfig{
			Source:             SourceFile,
			FilePath:           "/data/snapshot.json",
			DuckDBPath:         "/data/openalex.duckdb",
			DuckDBMaxMemory:    "1GB",
			EdgeWeighting:      "log1p",
			RefreshInterval:    6 * time.Hour,
			MinRefreshInterval: time.Minute,
			LoadTimeout:        5 * time.Minute,
			Watch:              false,
			WatchDebounce:      2 * time.Second,
			PersistPath:        "/data/snapshot-cache",
			Breaker: BreakerConfig{
				MaxFailures:      3,
				OpenTimeout:      2 * time.Minute,
				HalfOpenRequests: 1,
			},
		},
		Recommend: RecommendConfig{
			DefaultAlpha:      0.5,
			DefaultBeta:       0.5,
			TopConcepts:       5,
			NumHops:           2,
			DecayFactor:       0.5,
			MaxFrontier:       500,
			DefaultLimit:      50,
			MaxLimit:          200,
			PredictionTimeout: 5 * time.Second,
			MaxConceptVector:  200,
			CacheEnabled:      true,
			CacheTTL:          5 * time.Minute,
			CacheMaxEntries:   1000,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
			MaxBodyBytes:    1 << 20,
		},
		NATS: NATSConfig{
			Enabled:        false,
			URL:            "nats://127.0.0.1:4222",
			EmbeddedServer: true,
			StoreDir:       "/data/nats/jetstream",
			Subject:        "snapshot.refresh",
			QueueGroup:     "colaborador",
			DurableName:    "snapshot-refresher",
			CloseTimeout:   10 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration from three layers, later ones winning:
//  1. built-in defaults
//  2. an optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. mapped environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Snapshot
	"snapshot_source":               "snapshot.source",
	"snapshot_file":                 "snapshot.file_path",
	"duckdb_path":                   "snapshot.duckdb_path",
	"duckdb_max_memory":             "snapshot.duckdb_max_memory",
	"snapshot_edge_weighting":       "snapshot.edge_weighting",
	"snapshot_refresh_interval":     "snapshot.refresh_interval",
	"snapshot_min_refresh_interval": "snapshot.min_refresh_interval",
	"snapshot_load_timeout":         "snapshot.load_timeout",
	"snapshot_watch":                "snapshot.watch",
	"snapshot_watch_debounce":       "snapshot.watch_debounce",
	"snapshot_persist_path":         "snapshot.persist_path",
	"snapshot_breaker_max_failures": "snapshot.breaker.max_failures",
	"snapshot_breaker_timeout":      "snapshot.breaker.open_timeout",

	// Recommendation engine
	"recommend_default_alpha":      "recommend.default_alpha",
	"recommend_default_beta":       "recommend.default_beta",
	"recommend_top_concepts":       "recommend.top_concepts",
	"recommend_num_hops":           "recommend.num_hops",
	"recommend_decay_factor":       "recommend.decay_factor",
	"recommend_max_frontier":       "recommend.max_frontier",
	"recommend_default_limit":      "recommend.default_limit",
	"recommend_max_limit":          "recommend.max_limit",
	"recommend_prediction_timeout": "recommend.prediction_timeout",
	"recommend_cache_enabled":      "recommend.cache_enabled",
	"recommend_cache_ttl":          "recommend.cache_ttl",
	"recommend_cache_max_entries":  "recommend.cache_max_entries",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"max_body_bytes":      "security.max_body_bytes",

	// NATS
	"nats_enabled":     "nats.enabled",
	"nats_url":         "nats.url",
	"nats_embedded":    "nats.embedded_server",
	"nats_store_dir":   "nats.store_dir",
	"nats_subject":     "nats.subject",
	"nats_queue_group": "nats.queue_group",
	"nats_durable":     "nats.durable_name",
}

// envTransformFunc maps an environment variable to its koanf path.
//
//   - HTTP_PORT -> server.port
//   - SNAPSHOT_FILE -> snapshot.file_path
//   - RECOMMEND_NUM_HOPS -> recommend.num_hops
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
