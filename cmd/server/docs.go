// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// @title Colaborador IA API
// @version 1.0
// @description Hybrid author recommendation engine for Latin American research collaboration.
// @description
// @description ## Modes
// @description
// @description - **concepts**: only `concept_vector` given, ranked by cosine similarity
// @description - **author**: only `author_id` given, ranked by decayed co-authorship proximity
// @description - **hybrid**: both given, `alpha * content + beta * network`
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "UNKNOWN_AUTHOR",
// @description     "message": "unknown author: A999",
// @description     "details": {"field": "author_id"}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-03-01T12:00:00Z"
// @description   }
// @description }
// @description ```
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api
//
// @tag.name Recommendation
// @tag.description Collaborator recommendations
//
// @tag.name Catalog
// @tag.description Concept, author and institution lookups backed by the active snapshot
//
// @tag.name Core
// @tag.description Health, readiness and snapshot status
//
// @tag.name Admin
// @tag.description Snapshot refresh and request performance
package main
