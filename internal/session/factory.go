// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/nats-io/nats.go/jetstream"
)

// StoreType selects the session storage backend.
type StoreType string

const (
	// StoreMemory keeps sessions in process memory (default).
	StoreMemory StoreType = "memory"

	// StoreBadger persists sessions in a local BadgerDB.
	StoreBadger StoreType = "badger"

	// StoreNATS shares sessions through a NATS JetStream KV bucket.
	StoreNATS StoreType = "nats"
)

// FactoryConfig describes the store to open.
type FactoryConfig struct {
	Type StoreType

	// Path is the BadgerDB directory. Empty runs Badger in memory.
	Path string

	// TTL bounds the lifetime of a stored entry in persistent backends.
	TTL time.Duration

	NATSBucket   string
	NATSReplicas int
}

// Factory opens the configured Store and owns any resources it needs.
type Factory struct {
	cfg FactoryConfig
	js  jetstream.JetStream
	db  *badger.DB
}

// NewFactory creates a factory. js is only used for StoreNATS and may be nil
// otherwise.
func NewFactory(cfg FactoryConfig, js jetstream.JetStream) (*Factory, error) {
	f := &Factory{cfg: cfg, js: js}

	switch cfg.Type {
	case "", StoreMemory:
	case StoreBadger:
		opts := badger.DefaultOptions(cfg.Path)
		if cfg.Path == "" {
			opts = opts.WithInMemory(true)
		}
		opts.Logger = nil

		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for sessions: %w", err)
		}
		f.db = db
	case StoreNATS:
		if js == nil {
			return nil, errors.New("nats session store requires a JetStream connection")
		}
	default:
		return nil, fmt.Errorf("unknown session store type %q", cfg.Type)
	}

	return f, nil
}

// CreateStore returns the Store selected by the factory's configuration.
func (f *Factory) CreateStore(ctx context.Context) (Store, error) {
	switch {
	case f.db != nil:
		return NewBadgerStore(f.db, f.cfg.TTL), nil
	case f.cfg.Type == StoreNATS:
		return NewNATSStore(ctx, f.js, NATSStoreConfig{
			Bucket:   f.cfg.NATSBucket,
			Replicas: f.cfg.NATSReplicas,
			TTL:      f.cfg.TTL,
		})
	default:
		return NewMemoryStore(), nil
	}
}

// Close releases the BadgerDB if one was opened.
func (f *Factory) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}
