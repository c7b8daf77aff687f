// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/colaborador-ia/colaborador/internal/models"
	"github.com/colaborador-ia/colaborador/internal/recommend"
	"github.com/colaborador-ia/colaborador/internal/refresh"
)

// errorMapping ties a sentinel to its HTTP status, error code and, for
// request errors, the offending field.
type errorMapping struct {
	target error
	status int
	code   string
	field  string
}

var recommendErrorMappings = []errorMapping{
	{recommend.ErrEmptyQuery, http.StatusBadRequest, "EMPTY_QUERY", "concept_vector"},
	{recommend.ErrUnknownAuthor, http.StatusBadRequest, "UNKNOWN_AUTHOR", "author_id"},
	{recommend.ErrInvalidWeight, http.StatusBadRequest, "INVALID_WEIGHT", "alpha,beta"},
	{recommend.ErrInvalidCountry, http.StatusBadRequest, "INVALID_COUNTRY", "country_code"},
	{recommend.ErrInvalidOrder, http.StatusBadRequest, "INVALID_ORDER", "order_by"},
	{recommend.ErrTooManyConcepts, http.StatusBadRequest, "TOO_MANY_CONCEPTS", "concept_vector"},
	{recommend.ErrSnapshotUnavailable, http.StatusServiceUnavailable, "SNAPSHOT_UNAVAILABLE", ""},
	{refresh.ErrRefreshThrottled, http.StatusTooManyRequests, "REFRESH_THROTTLED", ""},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT", ""},
}

// classifyError maps err to a status and error body. Client errors keep
// their message; anything unrecognized becomes an opaque 500.
func classifyError(err error) (int, *models.APIError) {
	for _, m := range recommendErrorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		apiErr := &models.APIError{Code: m.code, Message: err.Error()}
		if m.field != "" {
			apiErr.Details = map[string]interface{}{"field": m.field}
		}
		if m.status == http.StatusGatewayTimeout {
			apiErr.Message = "Recommendation timed out"
		}
		return m.status, apiErr
	}
	return http.StatusInternalServerError, &models.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
	}
}

// respondClassified writes the error body chosen by classifyError.
func respondClassified(w http.ResponseWriter, err error) {
	status, apiErr := classifyError(err)
	respondAPIError(w, status, apiErr, err)
}
