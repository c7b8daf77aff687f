// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package source

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/logging"
	"github.com/colaborador-ia/colaborador/internal/metrics"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// ErrSourceUnavailable is returned without calling the wrapped source while
// the breaker is open.
var ErrSourceUnavailable = errors.New("snapshot source unavailable: circuit open")

// BreakerSource stops hammering a failing source. After MaxFailures
// consecutive failed loads the breaker opens for OpenTimeout; then
// HalfOpenRequests trial loads decide whether it closes again.
//
// Cancellation by the caller does not count as a source failure.
type BreakerSource struct {
	inner Source
	cb    *gobreaker.CircuitBreaker[*snapshot.Data]
	name  string
}

// NewBreakerSource wraps inner.
func NewBreakerSource(inner Source, cfg config.BreakerConfig) *BreakerSource {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}
	name := "snapshot-" + inner.Name()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*snapshot.Data](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},

		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("component", "source").
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})

	return &BreakerSource{inner: inner, cb: cb, name: name}
}

// Name implements Source; it reports the wrapped source's name.
func (b *BreakerSource) Name() string {
	return b.inner.Name()
}

// Inner returns the wrapped source.
func (b *BreakerSource) Inner() Source {
	return b.inner
}

// State returns the breaker state ("closed", "half-open" or "open").
func (b *BreakerSource) State() string {
	return b.cb.State().String()
}

// Load implements Source.
func (b *BreakerSource) Load(ctx context.Context) (*snapshot.Data, error) {
	data, err := b.cb.Execute(func() (*snapshot.Data, error) {
		return b.inner.Load(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, b.name)
	}
	return data, err
}
