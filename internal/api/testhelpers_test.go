// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/colaborador-ia/colaborador/internal/config"
	"github.com/colaborador-ia/colaborador/internal/middleware"
	"github.com/colaborador-ia/colaborador/internal/recommend"
	"github.com/colaborador-ia/colaborador/internal/refresh"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// fixtureData is a small Latin American research community:
//
//	A1 -2- A2 -1- A3
func fixtureData() *snapshot.Data {
	return &snapshot.Data{
		Version: "2026-10-01",
		Concepts: []snapshot.Concept{
			{ID: "C1", DisplayName: "Machine Learning", Level: 1},
			{ID: "C2", DisplayName: "Deep Learning", Level: 2},
			{ID: "C3", DisplayName: "Ecology", Level: 1},
		},
		Institutions: []snapshot.Institution{
			{ID: "I1", DisplayName: "Universidad de Chile", CountryCode: "CL"},
		},
		Authors: []snapshot.Author{
			{ID: "A1", DisplayName: "Ana Perez", InstitutionID: "I1", CountryCode: "CL",
				WorksCount: 5, CitedByCount: 50, ConceptAffinity: map[string]float64{"C1": 0.9, "C2": 0.4}},
			{ID: "A2", DisplayName: "Bruno Diaz", CountryCode: "AR",
				WorksCount: 7, CitedByCount: 20, ConceptAffinity: map[string]float64{"C1": 0.5}},
			{ID: "A3", DisplayName: "Carla Rojas", CountryCode: "BR",
				WorksCount: 10, CitedByCount: 100, ConceptAffinity: map[string]float64{"C3": 1}},
		},
		Coauthorships: []snapshot.Coauthorship{
			{AuthorA: "A1", AuthorB: "A2", SharedWorks: 2},
			{AuthorA: "A2", AuthorB: "A3", SharedWorks: 1},
		},
	}
}

func loadedStore(t *testing.T) *snapshot.Store {
	t.Helper()
	snap, err := snapshot.Build(fixtureData(), snapshot.BuildOptions{})
	if err != nil {
		t.Fatalf("snapshot.Build() error = %v", err)
	}
	store := snapshot.NewStore()
	store.Swap(snap)
	return store
}

// fakeRefresher implements SnapshotRefresher for testing.
type fakeRefresher struct {
	mu      sync.Mutex
	err     error
	stats   snapshot.Stats
	reasons []string
}

func (f *fakeRefresher) Trigger(_ context.Context, reason string) (snapshot.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reasons = append(f.reasons, reason)
	return f.stats, f.err
}

func (f *fakeRefresher) Status() refresh.Status {
	return refresh.Status{Source: "file", Refreshes: 1}
}

// stubRecommender returns a fixed error.
type stubRecommender struct {
	err error
}

func (s stubRecommender) Recommend(context.Context, recommend.Request) (*recommend.Response, error) {
	return nil, s.err
}

type serverOptions struct {
	store     *snapshot.Store
	engine    Recommender
	refresher SnapshotRefresher
	security  *config.SecurityConfig
	perf      bool
}

// newTestServer builds the full router around opts.
func newTestServer(t *testing.T, opts serverOptions) http.Handler {
	t.Helper()

	if opts.store == nil {
		opts.store = loadedStore(t)
	}
	if opts.engine == nil {
		engine, err := recommend.NewEngine(recommend.DefaultConfig(), opts.store, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		opts.engine = engine
	}

	cfg := &config.Config{Security: config.SecurityConfig{
		RateLimitDisabled: true,
		CORSOrigins:       []string{"https://colaborador.example"},
		MaxBodyBytes:      4096,
	}}
	if opts.security != nil {
		cfg.Security = *opts.security
	}

	var perf *middleware.PerformanceMonitor
	if opts.perf {
		perf = middleware.NewPerformanceMonitor(100, time.Second, zerolog.Nop())
	}

	handler := NewHandler(HandlerDeps{
		Engine:    opts.engine,
		Store:     opts.store,
		Refresher: opts.refresher,
		Perf:      perf,
		Config:    cfg,
		Version:   "test",
	})
	chiMW := NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security))
	return NewRouter(handler, chiMW).SetupChi()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// envelope mirrors models.APIResponse with a raw payload.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
	Metadata struct {
		RequestID       string `json:"request_id"`
		SnapshotVersion string `json:"snapshot_version"`
		Count           int    `json:"count"`
	} `json:"metadata"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := decodeEnvelope(t, w)
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
	return env.Error.Code
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
