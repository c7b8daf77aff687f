// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Blend contains the default hybrid weights.
	Blend BlendConfig `json:"blend"`

	// ContentBased contains parameters for the content-based scorer.
	ContentBased ContentBasedConfig `json:"content_based"`

	// Collaborative contains parameters for the graph walk.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// BlendConfig contains the weights applied when a request omits them.
type BlendConfig struct {
	// DefaultAlpha weighs the content-based score. Default: 0.5.
	DefaultAlpha float64 `json:"default_alpha"`

	// DefaultBeta weighs the collaborative score. Default: 0.5.
	DefaultBeta float64 `json:"default_beta"`
}

// ContentBasedConfig contains parameters for content-based scoring.
type ContentBasedConfig struct {
	// TopConcepts is how many contributing concepts are reported per author.
	// Default: 5.
	TopConcepts int `json:"top_concepts"`
}

// CollaborativeConfig contains parameters for the co-authorship graph walk.
type CollaborativeConfig struct {
	// NumHops is the search radius. Default: 2.
	NumHops int `json:"num_hops"`

	// DecayFactor is the per-hop score penalty. Default: 0.5.
	DecayFactor float64 `json:"decay_factor"`

	// MaxFrontier caps authors expanded per hop (0 = unbounded). Default: 500.
	MaxFrontier int `json:"max_frontier"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is the result count when a request omits limit. Default: 50.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the result count. Default: 200.
	MaxLimit int `json:"max_limit"`

	// PredictionTimeout bounds each scorer run. Default: 5s.
	PredictionTimeout time.Duration `json:"prediction_timeout"`

	// MaxConceptVector caps the number of query concepts. Default: 200.
	MaxConceptVector int `json:"max_concept_vector"`
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled turns the response cache on. Default: true.
	Enabled bool `json:"enabled"`

	// TTL is how long a cached response stays valid. Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the cache size. Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Blend: BlendConfig{
			DefaultAlpha: 0.5,
			DefaultBeta:  0.5,
		},
		ContentBased: ContentBasedConfig{
			TopConcepts: 5,
		},
		Collaborative: CollaborativeConfig{
			NumHops:     2,
			DecayFactor: 0.5,
			MaxFrontier: 500,
		},
		Limits: LimitsConfig{
			DefaultLimit:      50,
			MaxLimit:          200,
			PredictionTimeout: 5 * time.Second,
			MaxConceptVector:  200,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Blend.DefaultAlpha < 0 {
		return fmt.Errorf("blend.default_alpha must be non-negative, got %f", c.Blend.DefaultAlpha)
	}
	if c.Blend.DefaultBeta < 0 {
		return fmt.Errorf("blend.default_beta must be non-negative, got %f", c.Blend.DefaultBeta)
	}

	if c.ContentBased.TopConcepts < 1 {
		return fmt.Errorf("content_based.top_concepts must be positive, got %d", c.ContentBased.TopConcepts)
	}

	if c.Collaborative.NumHops < 1 || c.Collaborative.NumHops > 6 {
		return fmt.Errorf("collaborative.num_hops must be in [1, 6], got %d", c.Collaborative.NumHops)
	}
	if c.Collaborative.DecayFactor <= 0 || c.Collaborative.DecayFactor > 1 {
		return fmt.Errorf("collaborative.decay_factor must be in (0, 1], got %f", c.Collaborative.DecayFactor)
	}
	if c.Collaborative.MaxFrontier < 0 {
		return fmt.Errorf("collaborative.max_frontier must be non-negative, got %d", c.Collaborative.MaxFrontier)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.PredictionTimeout <= 0 {
		return fmt.Errorf("limits.prediction_timeout must be positive, got %v", c.Limits.PredictionTimeout)
	}
	if c.Limits.MaxConceptVector < 1 {
		return fmt.Errorf("limits.max_concept_vector must be positive, got %d", c.Limits.MaxConceptVector)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type limits struct {
		DefaultLimit      int    `json:"default_limit"`
		MaxLimit          int    `json:"max_limit"`
		PredictionTimeout string `json:"prediction_timeout"`
		MaxConceptVector  int    `json:"max_concept_vector"`
	}
	type cache struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}
	return json.Marshal(&struct {
		*Alias
		Limits limits `json:"limits"`
		Cache  cache  `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Limits: limits{
			DefaultLimit:      c.Limits.DefaultLimit,
			MaxLimit:          c.Limits.MaxLimit,
			PredictionTimeout: c.Limits.PredictionTimeout.String(),
			MaxConceptVector:  c.Limits.MaxConceptVector,
		},
		Cache: cache{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
