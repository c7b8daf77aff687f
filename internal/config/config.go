// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	NATS      NATSConfig      `koanf:"nats"` // Optional: refresh triggers over NATS (build tag nats)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Snapshot source kinds.
const (
	SourceFile   = "file"
	SourceDuckDB = "duckdb"
)

// SnapshotConfig controls where the dataset comes from and how often it is rebuilt.
type SnapshotConfig struct {
	// Source selects the loader: "file" (JSON bundle) or "duckdb".
	Source string `koanf:"source"`

	// FilePath is the JSON bundle read by the file source.
	FilePath string `koanf:"file_path"`

	// DuckDBPath is the database read by the duckdb source. Empty opens an
	// in-memory database, useful only with DuckDBAttach.
	DuckDBPath string `koanf:"duckdb_path"`

	// DuckDBMaxMemory caps DuckDB memory, e.g. "1GB".
	DuckDBMaxMemory string `koanf:"duckdb_max_memory"`

	// EdgeWeighting is "log1p" (default) or "raw".
	EdgeWeighting string `koanf:"edge_weighting"`

	// RefreshInterval rebuilds the snapshot periodically. 0 disables the ticker.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// MinRefreshInterval rate-limits externally triggered refreshes.
	MinRefreshInterval time.Duration `koanf:"min_refresh_interval"`

	// LoadTimeout bounds a single load and build.
	LoadTimeout time.Duration `koanf:"load_timeout"`

	// Watch rebuilds when the file source changes on disk.
	Watch bool `koanf:"watch"`

	// WatchDebounce coalesces bursts of file events.
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// PersistPath is the Badger directory holding the last good snapshot.
	// Empty disables persistence.
	PersistPath string `koanf:"persist_path"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around the snapshot source.
type BreakerConfig struct {
	// MaxFailures opens the breaker after this many consecutive failures.
	MaxFailures uint32 `koanf:"max_failures"`

	// OpenTimeout is how long the breaker stays open before a trial load.
	OpenTimeout time.Duration `koanf:"open_timeout"`

	// HalfOpenRequests is the number of trial loads allowed while half-open.
	HalfOpenRequests uint32 `koanf:"half_open_requests"`
}

// RecommendConfig holds recommendation engine tuning.
type RecommendConfig struct {
	DefaultAlpha float64 `koanf:"default_alpha"`
	DefaultBeta  float64 `koanf:"default_beta"`

	TopConcepts int `koanf:"top_concepts"`

	NumHops     int     `koanf:"num_hops"`
	DecayFactor float64 `koanf:"decay_factor"`
	MaxFrontier int     `koanf:"max_frontier"`

	DefaultLimit      int           `koanf:"default_limit"`
	MaxLimit          int           `koanf:"max_limit"`
	PredictionTimeout time.Duration `koanf:"prediction_timeout"`
	MaxConceptVector  int           `koanf:"max_concept_vector"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// SecurityConfig holds request hardening settings. There is no
// authentication layer; the service is expected behind a gateway.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// NATSConfig configures the refresh trigger subscriber.
type NATSConfig struct {
	// Enabled controls whether the subscriber runs.
	Enabled bool `koanf:"enabled"`

	// URL is the NATS server connection URL.
	URL string `koanf:"url"`

	// EmbeddedServer starts an in-process NATS server at URL.
	EmbeddedServer bool `koanf:"embedded_server"`

	// StoreDir is the JetStream storage directory of the embedded server.
	StoreDir string `koanf:"store_dir"`

	// Subject carries refresh requests.
	Subject string `koanf:"subject"`

	// QueueGroup spreads refresh requests across replicas.
	QueueGroup string `koanf:"queue_group"`

	// DurableName is the consumer durable name.
	DurableName string `koanf:"durable_name"`

	// CloseTimeout bounds router shutdown.
	CloseTimeout time.Duration `koanf:"close_timeout"`
}
