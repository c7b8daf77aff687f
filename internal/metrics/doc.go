// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

/*
Package metrics defines the Prometheus collectors of the service.

Collectors are registered on the default registry through promauto and are
exposed at /metrics:

	curl http://localhost:8000/metrics

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Recommendation:
  - recommend_requests_total{mode, outcome}
  - recommend_duration_seconds{mode}
  - recommend_scorer_duration_seconds{scorer}
  - recommend_candidates{mode}
  - cache_hits_total{cache}, cache_misses_total{cache}

Snapshot:
  - snapshot_loads_total{source, outcome}
  - snapshot_load_duration_seconds{source}
  - snapshot_authors, snapshot_concepts, snapshot_edges
  - snapshot_last_success_timestamp_seconds

Resilience:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Use the Record* helpers rather than the collectors directly so label values
stay consistent across packages.
*/
package metrics
