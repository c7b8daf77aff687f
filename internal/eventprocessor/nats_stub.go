// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

//go:build !nats

package eventprocessor

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
)

// EnsureRefreshStream returns ErrNATSNotAvailable.
func EnsureRefreshStream(_ context.Context, _, _ string) error {
	return ErrNATSNotAvailable
}

// RefreshSubscriber is a stub when NATS dependencies are not compiled in.
type RefreshSubscriber struct{}

// NewRefreshSubscriber returns ErrNATSNotAvailable.
func NewRefreshSubscriber(_ *SubscriberConfig, _ *RefreshHandler, _ watermill.LoggerAdapter) (*RefreshSubscriber, error) {
	return nil, ErrNATSNotAvailable
}

// Run returns ErrNATSNotAvailable.
func (s *RefreshSubscriber) Run(_ context.Context) error {
	return ErrNATSNotAvailable
}

// Running returns a channel that is never closed.
func (s *RefreshSubscriber) Running() chan struct{} {
	return make(chan struct{})
}

// Close is a no-op stub.
func (s *RefreshSubscriber) Close() error {
	return nil
}

// RefreshPublisher is a stub when NATS dependencies are not compiled in.
type RefreshPublisher struct{}

// NewRefreshPublisher returns ErrNATSNotAvailable.
func NewRefreshPublisher(_, _ string, _ watermill.LoggerAdapter) (*RefreshPublisher, error) {
	return nil, ErrNATSNotAvailable
}

// Publish returns ErrNATSNotAvailable.
func (p *RefreshPublisher) Publish(_ context.Context, _ *RefreshRequest) error {
	return ErrNATSNotAvailable
}

// Close is a no-op stub.
func (p *RefreshPublisher) Close() error {
	return nil
}
