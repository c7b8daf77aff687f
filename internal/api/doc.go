// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

/*
Package api implements the HTTP surface of the recommendation service.

Routes are registered on a chi router (see [Router.SetupChi]):

	POST /api/recommendation/                 hybrid recommendation
	GET  /api/concept/?search=&limit=         concept autocomplete
	GET  /api/author/?id=                     author profile
	GET  /api/authors/{id}                    author profile
	GET  /api/authors/{id}/concepts/?limit=   author top concepts
	GET  /api/authorsearch/?search=&limit=    author autocomplete
	GET  /api/institution/?id=                institution lookup
	GET  /api/health                          liveness
	GET  /api/health/ready                    readiness, 503 until a snapshot is loaded
	GET  /api/snapshot                        active snapshot and refresher status
	POST /api/admin/snapshot/refresh          rebuild the snapshot now
	GET  /api/admin/performance               per-route latency percentiles
	GET  /metrics                             Prometheus
	GET  /swagger/*                           API documentation

Every endpoint answers with the models.APIResponse envelope except
POST /api/recommendation/, whose success body is the bare
recommend.Response for compatibility with existing clients. Its errors
still use the envelope.

Request bodies are decoded strictly: unknown fields, trailing data and
bodies above security.max_body_bytes are rejected with 400.

Error codes map recommend sentinels one to one (EMPTY_QUERY,
UNKNOWN_AUTHOR, INVALID_WEIGHT, INVALID_COUNTRY, INVALID_ORDER,
TOO_MANY_CONCEPTS). A missing snapshot is 503 SNAPSHOT_UNAVAILABLE and a
scorer deadline is 504 TIMEOUT.
*/
package api
