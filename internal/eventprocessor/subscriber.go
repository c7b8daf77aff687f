// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

//go:build nats

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	natsgo "github.com/nats-io/nats.go"
)

const refreshHandlerName = "snapshot_refresh"

// RefreshSubscriber runs a Watermill router that feeds refresh requests
// from a durable JetStream queue consumer into a RefreshHandler.
type RefreshSubscriber struct {
	router     *message.Router
	subscriber message.Subscriber
	config     SubscriberConfig
}

// NewRefreshSubscriber connects to NATS and registers handler. The stream
// must exist; see EnsureRefreshStream.
func NewRefreshSubscriber(cfg *SubscriberConfig, handler *RefreshHandler, logger watermill.LoggerAdapter) (*RefreshSubscriber, error) {
	if handler == nil {
		return nil, errors.New("refresh handler required")
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	natsOpts := []natsgo.Option{
		natsgo.Name("colaborador-refresh"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("Refresh subscriber disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("Refresh subscriber reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	subOpts := []natsgo.SubOpt{
		natsgo.BindStream(cfg.StreamName),
		natsgo.MaxDeliver(cfg.MaxDeliver),
		natsgo.MaxAckPending(1),
		natsgo.AckWait(cfg.AckWaitTimeout),
		natsgo.DeliverNew(),
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: cfg.SubscribersCount,
		AckWaitTimeout:   cfg.AckWaitTimeout,
		CloseTimeout:     cfg.CloseTimeout,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision:    false,
			AckAsync:         false,
			SubscribeOptions: subOpts,
			DurablePrefix:    cfg.DurableName,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	retry := middleware.Retry{
		MaxRetries:      2,
		InitialInterval: time.Second,
		MaxInterval:     10 * time.Second,
		Multiplier:      2.0,
		Logger:          logger,
	}
	router.AddMiddleware(middleware.Recoverer, retry.Middleware)
	router.AddConsumerHandler(refreshHandlerName, cfg.Subject, sub, handler.Handle)

	return &RefreshSubscriber{
		router:     router,
		subscriber: sub,
		config:     *cfg,
	}, nil
}

// Run processes messages until ctx is canceled or Close is called.
func (s *RefreshSubscriber) Run(ctx context.Context) error {
	return s.router.Run(ctx)
}

// Running is closed once the router has started all handlers.
func (s *RefreshSubscriber) Running() chan struct{} {
	return s.router.Running()
}

// Close stops the router and the subscriber.
func (s *RefreshSubscriber) Close() error {
	routerErr := s.router.Close()
	subErr := s.subscriber.Close()
	return errors.Join(routerErr, subErr)
}
