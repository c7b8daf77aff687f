// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

//go:build nats

package eventprocessor

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
)

// RefreshPublisher publishes refresh requests to JetStream.
type RefreshPublisher struct {
	publisher message.Publisher
	subject   string
}

// NewRefreshPublisher connects a JetStream publisher. The stream must exist.
func NewRefreshPublisher(url, subject string, logger watermill.LoggerAdapter) (*RefreshPublisher, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: []natsgo.Option{natsgo.Name("colaborador-refresh-publisher")},
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: false,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}
	return &RefreshPublisher{publisher: pub, subject: subject}, nil
}

// Publish sends req. A zero RequestedAt is stamped with the current time.
func (p *RefreshPublisher) Publish(ctx context.Context, req *RefreshRequest) error {
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}
	data, err := EncodeRefreshRequest(req)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	if err := p.publisher.Publish(p.subject, msg); err != nil {
		return fmt.Errorf("publish refresh request: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (p *RefreshPublisher) Close() error {
	return p.publisher.Close()
}
