// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/colaborador-ia/colaborador/internal/config"
)

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, serverOptions{})
	w := doRequest(t, h, http.MethodGet, "/api/concept/?search=eco", "")

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Content-Type":           "application/json",
		"Cache-Control":          "public, max-age=60",
	}
	for header, value := range want {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if w.Header().Get("ETag") == "" {
		t.Error("ETag missing")
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must only be sent over https")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/concept/?search=eco", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	if got := serve(h, req).Header().Get("Strict-Transport-Security"); got == "" {
		t.Error("HSTS missing behind an https proxy")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, serverOptions{})

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"https://colaborador.example", "https://colaborador.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/recommendation/", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := serve(h, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want %q", tt.origin, got, tt.wantAllow)
		}
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, serverOptions{security: &config.SecurityConfig{
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
		MaxBodyBytes:    4096,
	}})

	for i := 0; i < 2; i++ {
		if w := doRequest(t, h, http.MethodGet, "/api/concept/?search=eco", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, w.Code)
		}
	}

	w := doRequest(t, h, http.MethodGet, "/api/concept/?search=eco", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if code := errorCode(t, w); code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("code = %q", code)
	}

	if w := doRequest(t, h, http.MethodGet, "/api/health", ""); w.Code != http.StatusOK {
		t.Errorf("health must use its own budget, status = %d", w.Code)
	}
}

func TestRouter_NotFoundAndMetrics(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, serverOptions{})

	w := doRequest(t, h, http.MethodGet, "/api/unknown", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if code := errorCode(t, w); code != "NOT_FOUND" {
		t.Errorf("code = %q", code)
	}

	doRequest(t, h, http.MethodGet, "/api/concept/?search=eco", "")
	w = doRequest(t, h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}
