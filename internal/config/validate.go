// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that the configuration is usable. Messages name the
// environment variable that controls the offending field.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateSnapshot,
		c.validateRecommend,
		c.validateSecurity,
		c.validateNATS,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be one of development, staging, production (got %q)", c.Server.Environment)
	}
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console' (got %q)", c.Logging.Format)
	}
	return nil
}

const minRefreshInterval = time.Minute

func (c *Config) validateSnapshot() error {
	s := c.Snapshot
	switch s.Source {
	case SourceFile:
		if s.FilePath == "" {
			return fmt.Errorf("SNAPSHOT_FILE is required when SNAPSHOT_SOURCE=file")
		}
	case SourceDuckDB:
		if s.DuckDBPath == "" {
			return fmt.Errorf("DUCKDB_PATH is required when SNAPSHOT_SOURCE=duckdb")
		}
		if s.Watch {
			return fmt.Errorf("SNAPSHOT_WATCH is only supported with SNAPSHOT_SOURCE=file")
		}
	default:
		return fmt.Errorf("SNAPSHOT_SOURCE must be 'file' or 'duckdb' (got %q)", s.Source)
	}

	if s.EdgeWeighting != "log1p" && s.EdgeWeighting != "raw" {
		return fmt.Errorf("SNAPSHOT_EDGE_WEIGHTING must be 'log1p' or 'raw' (got %q)", s.EdgeWeighting)
	}
	if s.RefreshInterval != 0 && s.RefreshInterval < minRefreshInterval {
		return fmt.Errorf("SNAPSHOT_REFRESH_INTERVAL must be 0 (disabled) or at least %v", minRefreshInterval)
	}
	if s.MinRefreshInterval < 0 {
		return fmt.Errorf("SNAPSHOT_MIN_REFRESH_INTERVAL must not be negative")
	}
	if s.LoadTimeout <= 0 {
		return fmt.Errorf("SNAPSHOT_LOAD_TIMEOUT must be positive")
	}
	if s.Watch && s.WatchDebounce < 0 {
		return fmt.Errorf("snapshot.watch_debounce must not be negative")
	}
	if s.Breaker.MaxFailures < 1 {
		return fmt.Errorf("SNAPSHOT_BREAKER_MAX_FAILURES must be at least 1")
	}
	if s.Breaker.OpenTimeout <= 0 {
		return fmt.Errorf("SNAPSHOT_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultAlpha < 0 || r.DefaultBeta < 0 {
		return fmt.Errorf("RECOMMEND_DEFAULT_ALPHA and RECOMMEND_DEFAULT_BETA must be non-negative")
	}
	if r.NumHops < 1 || r.NumHops > 6 {
		return fmt.Errorf("RECOMMEND_NUM_HOPS must be between 1 and 6")
	}
	if r.DecayFactor <= 0 || r.DecayFactor > 1 {
		return fmt.Errorf("RECOMMEND_DECAY_FACTOR must be in (0, 1]")
	}
	if r.DefaultLimit < 1 || r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be at least 1 and not exceed RECOMMEND_MAX_LIMIT")
	}
	if r.PredictionTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_PREDICTION_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit bounds.
const (
	rateLimitMinReqs   = 1
	rateLimitMaxReqs   = 100000
	rateLimitMinWindow = time.Second
	rateLimitMaxWindow = time.Hour
)

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < rateLimitMinReqs || c.Security.RateLimitReqs > rateLimitMaxReqs {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", rateLimitMinReqs, rateLimitMaxReqs)
		}
		if c.Security.RateLimitWindow < rateLimitMinWindow || c.Security.RateLimitWindow > rateLimitMaxWindow {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", rateLimitMinWindow, rateLimitMaxWindow)
		}
	}
	if c.Security.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}

func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}
	if err := validateNATSURL(c.NATS.URL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	if c.NATS.Subject == "" {
		return fmt.Errorf("NATS_SUBJECT is required when NATS_ENABLED=true")
	}
	if c.NATS.EmbeddedServer && c.NATS.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when NATS_EMBEDDED=true")
	}
	return nil
}

func validateNATSURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "nats" && u.Scheme != "tls" {
		return fmt.Errorf("scheme must be nats:// or tls://, got %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
