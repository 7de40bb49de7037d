// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// NATSStore implements Store on a NATS JetStream KeyValue bucket. Every
// Reelfeed instance connected to the same bucket sees the same sessions.
type NATSStore struct {
	kv jetstream.KeyValue
}

// NATSStoreConfig configures the backing bucket.
type NATSStoreConfig struct {
	Bucket   string
	Replicas int

	// TTL is applied per key by the bucket. Each Put resets it.
	TTL time.Duration
}

// NewNATSStore creates or updates the bucket and returns a store over it.
func NewNATSStore(ctx context.Context, js jetstream.JetStream, cfg NATSStoreConfig) (*NATSStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("session bucket name is required")
	}
	replicas := cfg.Replicas
	if replicas < 1 {
		replicas = 1
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      cfg.Bucket,
		Description: "Reelfeed feed sessions",
		TTL:         cfg.TTL,
		History:     1,
		Replicas:    replicas,
	})
	if err != nil {
		return nil, fmt.Errorf("create session bucket %s: %w", cfg.Bucket, err)
	}
	return &NATSStore{kv: kv}, nil
}

// NewNATSStoreFromKV wraps an existing bucket.
func NewNATSStoreFromKV(kv jetstream.KeyValue) *NATSStore {
	return &NATSStore{kv: kv}
}

// kvKey maps an arbitrary session key onto the KV key alphabet.
func kvKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

// Get retrieves a session by key.
func (s *NATSStore) Get(ctx context.Context, key string) (*Session, error) {
	entry, err := s.kv.Get(ctx, kvKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	sess, err := decode(entry.Value())
	if err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, nil
}

// Put creates or replaces a session.
func (s *NATSStore) Put(ctx context.Context, sess *Session) error {
	data, err := encode(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if _, err := s.kv.Put(ctx, kvKey(sess.Key), data); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Delete removes a session by key.
func (s *NATSStore) Delete(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, kvKey(key)); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteIdle removes sessions last touched before cutoff.
func (s *NATSStore) DeleteIdle(ctx context.Context, cutoff time.Time) (int, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, k := range keys {
		entry, err := s.kv.Get(ctx, k)
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("get session: %w", err)
		}

		sess, err := decode(entry.Value())
		if err == nil && !sess.LastTouchedAt.Before(cutoff) {
			continue
		}
		if err := s.kv.Delete(ctx, k); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
			return removed, fmt.Errorf("delete session: %w", err)
		}
		removed++
	}
	return removed, nil
}

// Count returns the number of live sessions.
func (s *NATSStore) Count(ctx context.Context) (int, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (s *NATSStore) keys(ctx context.Context) ([]string, error) {
	lister, err := s.kv.ListKeys(ctx)
	if errors.Is(err, jetstream.ErrNoKeysFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = lister.Stop() }()

	var keys []string
	for k := range lister.Keys() {
		keys = append(keys, k)
	}
	return keys, nil
}
