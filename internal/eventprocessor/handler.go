// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package eventprocessor

import (
	"context"
	"errors"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/colaborador-ia/colaborador/internal/metrics"
	"github.com/colaborador-ia/colaborador/internal/refresh"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// Triggerer starts a rate-limited snapshot refresh.
type Triggerer interface {
	Trigger(ctx context.Context, reason string) (snapshot.Stats, error)
}

// RefreshHandler turns refresh messages into Trigger calls.
//
// Every outcome other than cancellation is acked: a throttled request is
// already covered by the refresh in flight, and a failed refresh keeps the
// previous snapshot and is retried by the next trigger, not by redelivery.
type RefreshHandler struct {
	trigger Triggerer
	maxAge  time.Duration
	logger  zerolog.Logger
	now     func() time.Time
}

// NewRefreshHandler creates a handler. maxAge of zero accepts requests of any age.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRefreshHandler(trigger Triggerer, maxAge time.Duration, logger zerolog.Logger) *RefreshHandler {
	return &RefreshHandler{
		trigger: trigger,
		maxAge:  maxAge,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle processes one message. It matches message.NoPublishHandlerFunc.
func (h *RefreshHandler) Handle(msg *message.Message) error {
	req, err := DecodeRefreshRequest(msg.Payload)
	if err != nil {
		metrics.RecordRefreshMessage("malformed")
		h.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed refresh request")
		return nil
	}

	if h.maxAge > 0 && !req.RequestedAt.IsZero() && h.now().Sub(req.RequestedAt) > h.maxAge {
		metrics.RecordRefreshMessage("stale")
		h.logger.Info().
			Time("requested_at", req.RequestedAt).
			Str("requested_by", req.RequestedBy).
			Msg("Dropping stale refresh request")
		return nil
	}

	stats, err := h.trigger.Trigger(msg.Context(), req.TriggerReason())
	switch {
	case err == nil:
		metrics.RecordRefreshMessage("refreshed")
		h.logger.Info().
			Str("reason", req.TriggerReason()).
			Str("requested_by", req.RequestedBy).
			Str("version", stats.Version).
			Int("authors", stats.Authors).
			Msg("Snapshot refreshed on request")
		return nil
	case errors.Is(err, refresh.ErrRefreshThrottled):
		metrics.RecordRefreshMessage("throttled")
		h.logger.Debug().Str("reason", req.TriggerReason()).Msg("Refresh request throttled")
		return nil
	case errors.Is(err, context.Canceled):
		return err
	default:
		metrics.RecordRefreshMessage("failed")
		h.logger.Error().Err(err).Str("reason", req.TriggerReason()).Msg("Requested snapshot refresh failed")
		return nil
	}
}
