// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: propagates or generates X-Request-ID and stores it for logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight gauge per chi route
  - PerformanceMonitor: sliding-window latency percentiles and slow-request warnings

All middleware use the standard func(http.Handler) http.Handler shape so they
plug into chi directly:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)

CORS, rate limiting and compression come from the chi ecosystem and are
configured in package api.
*/
package middleware
