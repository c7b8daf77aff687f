// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/eventprocessor"
	"github.com/colaborador-ia/colaborador/internal/logging"
)

// NATSComponents holds the embedded server and the refresh subscriber.
//
// The subscriber is rebuilt on every Start so the supervisor can restart it
// after a failure; a closed watermill router cannot run again.
type NATSComponents struct {
	server   *eventprocessor.EmbeddedServer
	subCfg   eventprocessor.SubscriberConfig
	handler  *eventprocessor.RefreshHandler
	wmLogger watermill.LoggerAdapter

	mu         sync.Mutex
	subscriber *eventprocessor.RefreshSubscriber
	cancel     context.CancelFunc
	done       chan error
	running    bool
}

// InitNATS prepares NATS refresh triggers when NATS_ENABLED=true.
// It returns nil, nil when NATS is disabled or not compiled in.
func InitNATS(cfg *config.Config, trigger eventprocessor.Triggerer) (*NATSComponents, error) {
	if !cfg.NATS.Enabled {
		logging.Info().Msg("NATS refresh triggers disabled (NATS_ENABLED=false)")
		return nil, nil
	}
	if !eventprocessor.Available {
		logging.Warn().Msg("NATS_ENABLED=true but NATS support not compiled (build with -tags nats)")
		return nil, nil
	}

	components := &NATSComponents{
		subCfg:   eventprocessor.NewSubscriberConfig(&cfg.NATS),
		wmLogger: watermill.NewSlogLogger(logging.NewSlogLogger()),
	}

	if cfg.NATS.EmbeddedServer {
		serverCfg, err := eventprocessor.NewServerConfig(&cfg.NATS)
		if err != nil {
			return nil, err
		}
		server, err := eventprocessor.NewEmbeddedServer(&serverCfg)
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		components.server = server
		components.subCfg.URL = server.ClientURL()
		logging.Info().Str("url", server.ClientURL()).Msg("Embedded NATS server started")
	} else {
		logging.Info().Str("url", cfg.NATS.URL).Msg("Using external NATS server")
	}

	components.handler = eventprocessor.NewRefreshHandler(trigger, components.subCfg.MaxRequestAge,
		logging.WithComponent("nats-refresh"))

	return components, nil
}

// Start ensures the stream exists and runs the subscriber in the background.
// It returns once the router is consuming or has failed to start.
func (c *NATSComponents) Start(ctx context.Context) error {
	if c == nil || c.handler == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}

	if err := eventprocessor.EnsureRefreshStream(ctx, c.subCfg.URL, c.subCfg.Subject); err != nil {
		return err
	}

	sub, err := eventprocessor.NewRefreshSubscriber(&c.subCfg, c.handler, c.wmLogger)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sub.Run(runCtx)
	}()

	select {
	case <-sub.Running():
	case err := <-done:
		cancel()
		_ = sub.Close()
		return fmt.Errorf("refresh subscriber stopped during startup: %w", err)
	case <-ctx.Done():
		cancel()
		_ = sub.Close()
		return ctx.Err()
	}

	c.subscriber = sub
	c.cancel = cancel
	c.done = done
	c.running = true

	logging.Info().
		Str("subject", c.subCfg.Subject).
		Str("stream", c.subCfg.StreamName).
		Str("queue_group", c.subCfg.QueueGroup).
		Msg("NATS refresh subscriber running")
	return nil
}

// Shutdown stops the subscriber, then the embedded server.
func (c *NATSComponents) Shutdown(ctx context.Context) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subscriber != nil {
		c.cancel()
		if err := c.subscriber.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing NATS refresh subscriber")
		}
		select {
		case <-c.done:
		case <-ctx.Done():
			logging.Warn().Msg("Timed out waiting for NATS refresh subscriber")
		}
		c.subscriber = nil
	}

	if c.server != nil {
		if err := c.server.Shutdown(ctx); err != nil {
			logging.Warn().Err(err).Msg("Error shutting down embedded NATS server")
		}
		c.server = nil
	}

	c.running = false
	logging.Info().Msg("NATS components shut down")
}

// IsRunning reports whether the subscriber is consuming.
func (c *NATSComponents) IsRunning() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
