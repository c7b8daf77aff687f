// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package models

import (
	"time"
)

// APIResponse is the envelope of every endpoint except POST
// /api/recommendation/, which returns its result bare.
//
// Status is "success" (see Data) or "error" (see Error).
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "UNKNOWN_AUTHOR",
//	    "message": "unknown author: A999",
//	    "details": {"field": "author_id"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp       time.Time `json:"timestamp"`
	RequestID       string    `json:"request_id,omitempty"`
	QueryTimeMS     int64     `json:"query_time_ms,omitempty"`
	SnapshotVersion string    `json:"snapshot_version,omitempty"`
	Count           int       `json:"count,omitempty"`
}

// APIError is a machine-readable error.
//
// Common codes:
//   - VALIDATION_FAILED: body or parameters failed validation
//   - BAD_REQUEST: malformed JSON or parameters
//   - EMPTY_QUERY, UNKNOWN_AUTHOR, INVALID_WEIGHT, INVALID_COUNTRY,
//     INVALID_ORDER, TOO_MANY_CONCEPTS: recommendation request errors
//   - NOT_FOUND: unknown author, institution or concept
//   - SNAPSHOT_UNAVAILABLE: no dataset loaded yet
//   - TIMEOUT: scoring exceeded its deadline
//   - RATE_LIMIT_EXCEEDED, REFRESH_THROTTLED
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
