// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/colaborador-ia/colaborador/internal/persist"
	"github.com/colaborador-ia/colaborador/internal/recommend"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

func dataset(version string) *snapshot.Data {
	return &snapshot.Data{
		Version:  version,
		Concepts: []snapshot.Concept{{ID: "C1", DisplayName: "Machine Learning"}},
		Authors: []snapshot.Author{
			{ID: "A1", DisplayName: "Ana", ConceptAffinity: map[string]float64{"C1": 1}},
			{ID: "A2", DisplayName: "Bruno"},
		},
		Coauthorships: []snapshot.Coauthorship{{AuthorA: "A1", AuthorB: "A2", SharedWorks: 1}},
	}
}

type fakeSource struct {
	mu          sync.Mutex
	data        *snapshot.Data
	err         error
	calls       atomic.Int64
	sawDeadline atomic.Bool
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Load(ctx context.Context) (*snapshot.Data, error) {
	s.calls.Add(1)
	if _, ok := ctx.Deadline(); ok {
		s.sawDeadline.Store(true)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.err
}

func (s *fakeSource) set(data *snapshot.Data, err error) {
	s.mu.Lock()
	s.data, s.err = data, err
	s.mu.Unlock()
}

type fakePersister struct {
	mu    sync.Mutex
	saved *snapshot.Data
	err   error
}

func (p *fakePersister) Save(data *snapshot.Data) (persist.Meta, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = data
	return persist.Meta{Version: data.Version}, nil
}

func (p *fakePersister) Load() (*snapshot.Data, persist.Meta, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, persist.Meta{}, p.err
	}
	if p.saved == nil {
		return nil, persist.Meta{}, persist.ErrNoSnapshot
	}
	return p.saved, persist.Meta{Version: p.saved.Version}, nil
}

type countingInvalidator struct {
	calls atomic.Int64
}

func (c *countingInvalidator) InvalidateCache() { c.calls.Add(1) }

func TestRefresh_SwapsAndPersists(t *testing.T) {
	t.Parallel()

	src := &fakeSource{data: dataset("v1")}
	store := snapshot.NewStore()
	persister := &fakePersister{}
	inv := &countingInvalidator{}

	r := New(src, store, persister, Options{LoadTimeout: time.Minute}, zerolog.Nop())
	r.SetInvalidator(inv)

	stats, err := r.Refresh(context.Background(), "test")
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if stats.Version != "v1" || stats.Authors != 2 || stats.Edges != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if cur := store.Current(); cur == nil || cur.Version() != "v1" {
		t.Fatalf("store should hold v1")
	}
	if persister.saved == nil || persister.saved.Version != "v1" {
		t.Error("dataset should be persisted")
	}
	if inv.calls.Load() != 1 {
		t.Errorf("invalidator calls = %d, want 1", inv.calls.Load())
	}
	if !src.sawDeadline.Load() {
		t.Error("source should receive the load timeout")
	}

	status := r.Status()
	if status.Refreshes != 1 || status.LastReason != "test" || status.LastError != "" || status.Source != "fake" {
		t.Errorf("status = %+v", status)
	}
}

func TestRefresh_FailureKeepsCurrent(t *testing.T) {
	t.Parallel()

	src := &fakeSource{data: dataset("v1")}
	store := snapshot.NewStore()
	r := New(src, store, nil, Options{}, zerolog.Nop())

	if _, err := r.Refresh(context.Background(), "first"); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	src.set(nil, errors.New("source down"))
	if _, err := r.Refresh(context.Background(), "second"); err == nil {
		t.Fatal("Refresh() expected error")
	}
	if store.Current().Version() != "v1" {
		t.Error("failed refresh must keep the previous snapshot")
	}

	status := r.Status()
	if status.Failures != 1 || status.LastError == "" {
		t.Errorf("status = %+v", status)
	}
}

func TestRefresh_BuildError(t *testing.T) {
	t.Parallel()

	bad := dataset("bad")
	bad.Authors = append(bad.Authors, snapshot.Author{ID: "A1"})
	src := &fakeSource{data: bad}
	store := snapshot.NewStore()
	r := New(src, store, nil, Options{}, zerolog.Nop())

	_, err := r.Refresh(context.Background(), "test")
	if !errors.Is(err, snapshot.ErrDuplicateAuthor) {
		t.Errorf("Refresh() error = %v, want ErrDuplicateAuthor", err)
	}
	if store.Current() != nil {
		t.Error("store should stay empty")
	}
}

func TestTrigger_Throttled(t *testing.T) {
	t.Parallel()

	src := &fakeSource{data: dataset("v1")}
	r := New(src, snapshot.NewStore(), nil, Options{MinTriggerInterval: time.Hour}, zerolog.Nop())

	if _, err := r.Trigger(context.Background(), "admin"); err != nil {
		t.Fatalf("first Trigger() error = %v", err)
	}
	if _, err := r.Trigger(context.Background(), "admin"); !errors.Is(err, ErrRefreshThrottled) {
		t.Errorf("second Trigger() error = %v, want ErrRefreshThrottled", err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}

	// Refresh itself is never throttled.
	if _, err := r.Refresh(context.Background(), "ticker"); err != nil {
		t.Errorf("Refresh() error = %v", err)
	}
}

func TestTrigger_Unlimited(t *testing.T) {
	t.Parallel()

	src := &fakeSource{data: dataset("v1")}
	r := New(src, snapshot.NewStore(), nil, Options{}, zerolog.Nop())
	for i := 0; i < 3; i++ {
		if _, err := r.Trigger(context.Background(), "nats"); err != nil {
			t.Fatalf("Trigger() #%d error = %v", i, err)
		}
	}
}

func TestWarm(t *testing.T) {
	t.Parallel()

	t.Run("source ok", func(t *testing.T) {
		t.Parallel()
		store := snapshot.NewStore()
		r := New(&fakeSource{data: dataset("live")}, store, &fakePersister{saved: dataset("old")}, Options{}, zerolog.Nop())
		if _, err := r.Warm(context.Background()); err != nil {
			t.Fatalf("Warm() error = %v", err)
		}
		if store.Current().Version() != "live" || r.Status().Restored {
			t.Error("Warm() should prefer the live source")
		}
	})

	t.Run("falls back to persisted", func(t *testing.T) {
		t.Parallel()
		store := snapshot.NewStore()
		inv := &countingInvalidator{}
		r := New(&fakeSource{err: errors.New("down")}, store, &fakePersister{saved: dataset("old")}, Options{}, zerolog.Nop())
		r.SetInvalidator(inv)

		stats, err := r.Warm(context.Background())
		if err != nil {
			t.Fatalf("Warm() error = %v", err)
		}
		if stats.Version != "old" || store.Current().Version() != "old" {
			t.Errorf("stats = %+v", stats)
		}
		if !r.Status().Restored {
			t.Error("Status().Restored should be true")
		}
		if inv.calls.Load() != 1 {
			t.Errorf("invalidator calls = %d, want 1", inv.calls.Load())
		}
	})

	t.Run("both fail", func(t *testing.T) {
		t.Parallel()
		store := snapshot.NewStore()
		r := New(&fakeSource{err: errors.New("down")}, store, &fakePersister{}, Options{}, zerolog.Nop())
		_, err := r.Warm(context.Background())
		if !errors.Is(err, recommend.ErrSnapshotUnavailable) {
			t.Errorf("Warm() error = %v, want ErrSnapshotUnavailable", err)
		}
		if !errors.Is(err, persist.ErrNoSnapshot) {
			t.Errorf("Warm() error = %v, should wrap ErrNoSnapshot", err)
		}
		if store.Current() != nil {
			t.Error("store should stay empty")
		}
	})

	t.Run("no persister", func(t *testing.T) {
		t.Parallel()
		r := New(&fakeSource{err: errors.New("down")}, snapshot.NewStore(), nil, Options{}, zerolog.Nop())
		if _, err := r.Warm(context.Background()); !errors.Is(err, recommend.ErrSnapshotUnavailable) {
			t.Errorf("Warm() error = %v, want ErrSnapshotUnavailable", err)
		}
	})
}

func TestRefresh_Serialized(t *testing.T) {
	t.Parallel()

	src := &fakeSource{data: dataset("v1")}
	store := snapshot.NewStore()
	r := New(src, store, nil, Options{}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Refresh(context.Background(), "concurrent")
		}()
	}
	wg.Wait()

	if got := r.Status().Refreshes; got != 8 {
		t.Errorf("Refreshes = %d, want 8", got)
	}
	if store.Swaps() != 8 {
		t.Errorf("Swaps() = %d, want 8", store.Swaps())
	}
}
