// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package persist keeps the last successfully built dataset in BadgerDB so a
// restart can serve recommendations even when the snapshot source is down.
package persist

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

const (
	dataKey = "snapshot:data"
	metaKey = "snapshot:meta"
)

// ErrNoSnapshot means nothing has been saved yet.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// Meta describes the persisted dataset.
type Meta struct {
	Version  string    `json:"version"`
	SavedAt  time.Time `json:"saved_at"`
	Authors  int       `json:"authors"`
	Concepts int       `json:"concepts"`
	Bytes    int       `json:"bytes"`
}

// Store persists one dataset, replacing the previous one on every Save.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens (or creates) the Badger directory at dir.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(dir string, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(&badgerLogger{logger: logger.With().Str("component", "persist").Logger()}).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the persisted dataset with data. Data and metadata are
// written in one transaction.
func (s *Store) Save(data *snapshot.Data) (Meta, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Meta{}, fmt.Errorf("marshal snapshot data: %w", err)
	}
	meta := Meta{
		Version:  data.Version,
		SavedAt:  s.now().UTC(),
		Authors:  len(data.Authors),
		Concepts: len(data.Concepts),
		Bytes:    len(payload),
	}
	metaPayload, err := json.Marshal(meta)
	if err != nil {
		return Meta{}, fmt.Errorf("marshal snapshot meta: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(dataKey), payload); err != nil {
			return fmt.Errorf("set data: %w", err)
		}
		if err := txn.Set([]byte(metaKey), metaPayload); err != nil {
			return fmt.Errorf("set meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return Meta{}, err
	}
	return meta, nil
}

// Load returns the persisted dataset, or ErrNoSnapshot.
func (s *Store) Load() (*snapshot.Data, Meta, error) {
	var (
		data snapshot.Data
		meta Meta
	)
	err := s.db.View(func(txn *badger.Txn) error {
		if err := getJSON(txn, metaKey, &meta); err != nil {
			return err
		}
		return getJSON(txn, dataKey, &data)
	})
	if err != nil {
		return nil, Meta{}, err
	}
	return &data, meta, nil
}

// Meta returns the metadata of the persisted dataset without decoding it.
func (s *Store) Meta() (Meta, error) {
	var meta Meta
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, metaKey, &meta)
	})
	return meta, err
}

func getJSON(txn *badger.Txn, key string, v interface{}) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNoSnapshot
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, v); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	})
}

// badgerLogger routes Badger's printf-style logging to zerolog. Info and
// debug chatter goes to debug.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}
