// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package eventprocessor

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/colaborador-ia/colaborador/internal/config"
)

// RefreshStreamName is the JetStream stream holding refresh requests.
const RefreshStreamName = "SNAPSHOT_REFRESH"

// ErrNATSNotAvailable is returned by the stub constructors when the binary
// was built without the nats tag.
var ErrNATSNotAvailable = errors.New("NATS support not available: build with -tags=nats")

// ServerConfig holds embedded NATS server settings.
type ServerConfig struct {
	Host              string
	Port              int
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// SubscriberConfig holds refresh subscriber settings.
type SubscriberConfig struct {
	URL              string
	Subject          string
	StreamName       string
	QueueGroup       string
	DurableName      string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	CloseTimeout     time.Duration
	MaxReconnects    int
	ReconnectWait    time.Duration
	MaxDeliver       int

	// MaxRequestAge drops requests older than this. Zero keeps all.
	MaxRequestAge time.Duration
}

// NewServerConfig derives the embedded server listen address from the
// client URL, so clients and server agree on one setting.
func NewServerConfig(cfg *config.NATSConfig) (ServerConfig, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("parse NATS URL %q: %w", cfg.URL, err)
	}
	host := u.Hostname()
	if host == "" {
		host = "127.0.0.1"
	}
	port := 4222
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("parse NATS port %q: %w", p, err)
		}
	}
	return ServerConfig{
		Host:              host,
		Port:              port,
		StoreDir:          cfg.StoreDir,
		JetStreamMaxMem:   64 << 20,
		JetStreamMaxStore: 256 << 20,
	}, nil
}

// NewSubscriberConfig maps application config onto subscriber settings.
func NewSubscriberConfig(cfg *config.NATSConfig) SubscriberConfig {
	closeTimeout := cfg.CloseTimeout
	if closeTimeout <= 0 {
		closeTimeout = 10 * time.Second
	}
	return SubscriberConfig{
		URL:              cfg.URL,
		Subject:          cfg.Subject,
		StreamName:       RefreshStreamName,
		QueueGroup:       cfg.QueueGroup,
		DurableName:      cfg.DurableName,
		SubscribersCount: 1,
		AckWaitTimeout:   10 * time.Minute,
		CloseTimeout:     closeTimeout,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
		MaxDeliver:       3,
		MaxRequestAge:    time.Hour,
	}
}
