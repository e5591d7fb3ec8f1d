// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

// Package store persists identities, profiles and posts in BadgerDB.
//
// Records are JSON values under typed key prefixes. Secondary indexes (e-mail,
// federated subject, post owner) are plain keys pointing at the primary id and
// are written in the same transaction as the record they index.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/metrics"
)

// Errors
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when another identity owns the e-mail address.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrDuplicateSubject is returned when another identity owns the federated subject.
	ErrDuplicateSubject = errors.New("federated subject already linked")

	// ErrAlreadyExists is returned when creating a record whose key is taken.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store is closed")
)

// maxConflictRetries bounds optimistic transaction retries on badger.ErrConflict.
const maxConflictRetries = 3

// Config configures the store.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in memory. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Compression enables Snappy block compression.
	Compression bool

	// GCRatio is the value-log discard ratio for RunGC.
	GCRatio float64
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Path:        "/data/startupvista",
		SyncWrites:  true,
		Compression: true,
		GCRatio:     0.5,
	}
}

// Store is the BadgerDB-backed persistence layer.
type Store struct {
	db  *badger.DB
	cfg Config

	mu     sync.RWMutex
	closed bool

	now func() time.Time
}

// Open opens (or creates) the database described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store path is required")
	}
	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.Compression {
		opts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("Store opened")

	return &Store{db: db, cfg: cfg, now: time.Now}, nil
}

// OpenInMemory opens an empty in-memory store.
func OpenInMemory() (*Store, error) {
	return Open(Config{InMemory: true})
}

// Close flushes and closes the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	logging.Info().Msg("Store closed")
	return nil
}

// Ping reports whether the store can serve reads.
func (s *Store) Ping(ctx context.Context) error {
	return s.view(ctx, "ping", "store", func(*badger.Txn) error { return nil })
}

// RunGC reclaims value-log space until badger reports nothing left to rewrite.
// It returns the number of files rewritten.
func (s *Store) RunGC() (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if s.cfg.InMemory {
		return 0, nil
	}

	rewritten := 0
	for {
		err := s.db.RunValueLogGC(s.cfg.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			break
		}
		if err != nil {
			metrics.StoreGCRuns.WithLabelValues("error").Inc()
			return rewritten, fmt.Errorf("run value log GC: %w", err)
		}
		rewritten++
	}

	if rewritten > 0 {
		metrics.StoreGCRuns.WithLabelValues("rewritten").Inc()
	} else {
		metrics.StoreGCRuns.WithLabelValues("nothing").Inc()
	}
	return rewritten, nil
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// view runs fn in a read-only transaction.
func (s *Store) view(ctx context.Context, op, collection string, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	start := time.Now()
	err := s.db.View(fn)
	metrics.RecordStoreOperation(op, collection, time.Since(start), ignoreNotFound(err))
	return err
}

// update runs fn in a read-write transaction, retrying on write conflicts.
// fn must be safe to run more than once.
func (s *Store) update(ctx context.Context, op, collection string, fn func(txn *badger.Txn) error) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	start := time.Now()
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if err = ctx.Err(); err != nil {
			break
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
		logging.Debug().Str("op", op).Int("attempt", attempt+1).Msg("Store write conflict, retrying")
	}
	metrics.RecordStoreOperation(op, collection, time.Since(start), ignoreNotFound(err))
	return err
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := txn.Set(key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func getString(txn *badger.Txn, key []byte) (string, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(val), nil
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	return true, nil
}

func deleteKey(txn *badger.Txn, key []byte) error {
	if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
