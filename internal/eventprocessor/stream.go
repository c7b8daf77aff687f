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

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EnsureRefreshStream creates or updates the stream that stores refresh
// requests on subject. It is idempotent and safe to call from every replica.
//
// Requests expire after an hour and only the latest few are kept; an old
// refresh request carries no information a newer one does not.
func EnsureRefreshStream(ctx context.Context, url, subject string) error {
	nc, err := natsgo.Connect(url, natsgo.Name("colaborador-stream-init"))
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       RefreshStreamName,
		Subjects:   []string{subject},
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     time.Hour,
		MaxMsgs:    100,
		Duplicates: 2 * time.Minute,
		Storage:    jetstream.FileStorage,
		Discard:    jetstream.DiscardOld,
	})
	if err != nil {
		return fmt.Errorf("create or update stream %s: %w", RefreshStreamName, err)
	}
	return nil
}
