// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

//go:build nats

package eventprocessor

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/colaborador-ia/colaborador/internal/config"
)

func startServer(t *testing.T) *EmbeddedServer {
	t.Helper()
	srv, err := NewEmbeddedServer(&ServerConfig{
		Host:              "127.0.0.1",
		Port:              -1, // random
		StoreDir:          t.TempDir(),
		JetStreamMaxMem:   16 << 20,
		JetStreamMaxStore: 64 << 20,
	})
	if err != nil {
		t.Fatalf("NewEmbeddedServer() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func TestEmbeddedServer_Starts(t *testing.T) {
	srv := startServer(t)
	if !srv.IsRunning() {
		t.Error("server not running")
	}
	if !srv.JetStreamEnabled() {
		t.Error("JetStream not enabled")
	}
	if srv.ClientURL() == "" {
		t.Error("empty client URL")
	}
}

func TestRefreshRoundTrip(t *testing.T) {
	srv := startServer(t)
	assertRefreshRoundTrip(t, srv.ClientURL())
}

// assertRefreshRoundTrip publishes one request at url and waits for the
// subscriber to turn it into a refresh trigger.
func assertRefreshRoundTrip(t *testing.T, url string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const subject = "snapshot.refresh"
	if err := EnsureRefreshStream(ctx, url, subject); err != nil {
		t.Fatalf("EnsureRefreshStream() error = %v", err)
	}
	// Idempotent.
	if err := EnsureRefreshStream(ctx, url, subject); err != nil {
		t.Fatalf("second EnsureRefreshStream() error = %v", err)
	}

	subCfg := NewSubscriberConfig(&config.NATSConfig{
		URL:         url,
		Subject:     subject,
		QueueGroup:  "colaborador",
		DurableName: "snapshot-refresher",
	})
	trig := &fakeTrigger{}
	sub, err := NewRefreshSubscriber(&subCfg, NewRefreshHandler(trig, time.Hour, zerolog.Nop()), nil)
	if err != nil {
		t.Fatalf("NewRefreshSubscriber() error = %v", err)
	}
	defer sub.Close()

	go func() { _ = sub.Run(ctx) }()
	select {
	case <-sub.Running():
	case <-ctx.Done():
		t.Fatal("router did not start")
	}

	pub, err := NewRefreshPublisher(url, subject, nil)
	if err != nil {
		t.Fatalf("NewRefreshPublisher() error = %v", err)
	}
	defer pub.Close()

	if err := pub.Publish(ctx, &RefreshRequest{Reason: "etl", RequestedBy: "test"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if calls := trig.calls(); len(calls) > 0 {
			if calls[0] != "nats:etl" {
				t.Errorf("reason = %q, want nats:etl", calls[0])
			}
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("refresh request was not delivered")
}
