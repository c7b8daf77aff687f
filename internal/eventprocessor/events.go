// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package eventprocessor

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// RefreshRequest asks the service to rebuild its snapshot.
type RefreshRequest struct {
	// Reason is free text recorded in the refresh status, e.g. "etl-finished".
	Reason string `json:"reason,omitempty"`

	// RequestedBy identifies the publisher.
	RequestedBy string `json:"requested_by,omitempty"`

	RequestedAt time.Time `json:"requested_at"`
}

// TriggerReason is the reason passed to the refresher.
func (r *RefreshRequest) TriggerReason() string {
	if r.Reason == "" {
		return "nats"
	}
	return "nats:" + r.Reason
}

// EncodeRefreshRequest serializes a request.
func EncodeRefreshRequest(req *RefreshRequest) ([]byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal refresh request: %w", err)
	}
	return data, nil
}

// DecodeRefreshRequest parses a request. An empty payload is a valid
// request with no reason.
func DecodeRefreshRequest(payload []byte) (*RefreshRequest, error) {
	req := &RefreshRequest{}
	if len(bytes.TrimSpace(payload)) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(payload, req); err != nil {
		return nil, fmt.Errorf("unmarshal refresh request: %w", err)
	}
	return req, nil
}
