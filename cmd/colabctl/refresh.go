// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/colaborador-ia/colaborador/internal/eventprocessor"
	"github.com/colaborador-ia/colaborador/internal/logging"
)

const refreshPath = "/api/admin/snapshot/refresh"

func newRefreshCmd() *cobra.Command {
	var (
		server  string
		natsURL string
		subject string
		reason  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Ask a running server to rebuild its snapshot",
		Long: "Calls the admin refresh endpoint, or publishes a refresh request on NATS " +
			"when --nats is set (requires a binary built with -tags nats).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if natsURL != "" {
				return publishRefresh(ctx, cmd, natsURL, subject, reason)
			}
			return postRefresh(ctx, cmd, server)
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8000", "server base URL")
	cmd.Flags().StringVar(&natsURL, "nats", "", "publish on this NATS URL instead of calling the server")
	cmd.Flags().StringVar(&subject, "subject", "snapshot.refresh", "NATS subject")
	cmd.Flags().StringVar(&reason, "reason", "colabctl", "reason recorded in the refresh status")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "request timeout")
	return cmd
}

// postRefresh calls the admin endpoint and prints the returned snapshot info.
func postRefresh(ctx context.Context, cmd *cobra.Command, server string) error {
	url := strings.TrimRight(server, "/") + refreshPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("unexpected response (HTTP %d): %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	if resp.StatusCode != http.StatusOK || envelope.Error != nil {
		if envelope.Error == nil {
			return fmt.Errorf("refresh failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("refresh failed: %s: %s", envelope.Error.Code, envelope.Error.Message)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, envelope.Data, "", "  "); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
	return err
}

// publishRefresh sends a RefreshRequest over NATS.
func publishRefresh(ctx context.Context, cmd *cobra.Command, url, subject, reason string) error {
	if !eventprocessor.Available {
		return errors.New("NATS support not compiled in (rebuild with -tags nats)")
	}

	pub, err := eventprocessor.NewRefreshPublisher(url, subject, watermill.NewSlogLogger(logging.NewSlogLogger()))
	if err != nil {
		return err
	}
	defer pub.Close()

	host, _ := os.Hostname()
	req := &eventprocessor.RefreshRequest{
		Reason:      reason,
		RequestedBy: "colabctl@" + host,
		RequestedAt: time.Now().UTC(),
	}
	if err := pub.Publish(ctx, req); err != nil {
		return fmt.Errorf("publish refresh request: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "refresh request published on %s\n", subject)
	return nil
}
