// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Recommendation requests, scorer latency and candidate counts
// - Response cache efficiency
// - Snapshot loads and dataset size
// - Circuit breaker state of snapshot sources
// - Refresh requests received over NATS

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by mode and outcome",
		},
		[]string{"mode", "outcome"}, // outcome: "ok", "client_error", "unavailable", "error"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "End-to-end recommendation latency in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"mode"},
	)

	ScorerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_scorer_duration_seconds",
			Help:    "Scorer latency in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
		[]string{"scorer"},
	)

	RecommendCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of scored candidates per request before filtering",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 .. 16384
		},
		[]string{"mode"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// Snapshot Metrics
	SnapshotLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_loads_total",
			Help: "Total number of snapshot load attempts",
		},
		[]string{"source", "outcome"}, // outcome: "success", "failure", "throttled"
	)

	SnapshotLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snapshot_load_duration_seconds",
			Help:    "Snapshot load and build duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"source"},
	)

	SnapshotAuthors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_authors",
			Help: "Number of author profiles in the active snapshot",
		},
	)

	SnapshotConcepts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_concepts",
			Help: "Number of concepts in the active snapshot",
		},
	)

	SnapshotEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_edges",
			Help: "Number of co-authorship edges in the active snapshot",
		},
	)

	SnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_last_success_timestamp_seconds",
			Help: "Unix time of the last successful snapshot swap",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Messaging Metrics
	RefreshMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_messages_total",
			Help: "Total number of refresh requests received over NATS",
		},
		[]string{"outcome"}, // outcome: "refreshed", "throttled", "stale", "malformed", "failed"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one finished recommendation request.
func RecordRecommendation(mode, outcome string, duration time.Duration, candidates int) {
	RecommendRequests.WithLabelValues(mode, outcome).Inc()
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if outcome == "ok" {
		RecommendCandidates.WithLabelValues(mode).Observe(float64(candidates))
	}
}

// RecordScorer records one scorer run.
func RecordScorer(scorer string, duration time.Duration) {
	ScorerDuration.WithLabelValues(scorer).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}

// RecordSnapshotLoad records a load attempt and its duration.
func RecordSnapshotLoad(source, outcome string, duration time.Duration) {
	SnapshotLoads.WithLabelValues(source, outcome).Inc()
	if outcome != "throttled" {
		SnapshotLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	}
}

// UpdateSnapshotGauges publishes the size of the active snapshot.
func UpdateSnapshotGauges(concepts, authors, edges int, swappedAt time.Time) {
	SnapshotConcepts.Set(float64(concepts))
	SnapshotAuthors.Set(float64(authors))
	SnapshotEdges.Set(float64(edges))
	SnapshotLastSuccess.Set(float64(swappedAt.Unix()))
}

// RecordCircuitBreakerTransition records a breaker state change. States use
// the gobreaker names ("closed", "half-open", "open").
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecordRefreshMessage counts one refresh request consumed from NATS.
func RecordRefreshMessage(outcome string) {
	RefreshMessages.WithLabelValues(outcome).Inc()
}
