// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var storeEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestBadgerDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestJetStream(t *testing.T) jetstream.JetStream {
	t.Helper()

	ns, err := server.NewServer(&server.Options{
		ServerName: "session-test",
		Host:       "127.0.0.1",
		Port:       -1,
		JetStream:  true,
		StoreDir:   t.TempDir(),
		NoLog:      true,
		NoSigs:     true,
	})
	if err != nil {
		t.Fatalf("create nats server: %v", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(10 * time.Second) {
		t.Fatal("nats server not ready")
	}
	t.Cleanup(ns.Shutdown)

	nc, err := nats.Connect(ns.ClientURL())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(nc.Close)

	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("jetstream: %v", err)
	}
	return js
}

// storeFactories builds one of each Store implementation.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"badger": func() Store { return NewBadgerStore(newTestBadgerDB(t), 0) },
		"nats": func() Store {
			s, err := NewNATSStore(context.Background(), newTestJetStream(t), NATSStoreConfig{Bucket: "sessions_test"})
			if err != nil {
				t.Fatalf("NewNATSStore: %v", err)
			}
			return s
		},
	}
}

func TestStore_Contract(t *testing.T) {
	for name, mk := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := mk()
			ctx := context.Background()

			if _, err := store.Get(ctx, "user-1"); !errors.Is(err, ErrSessionNotFound) {
				t.Fatalf("Get on empty store: err = %v, want ErrSessionNotFound", err)
			}

			sess := New("user-1", 42, storeEpoch)
			sess.Seen["v1"] = struct{}{}
			sess.Seen["v2"] = struct{}{}
			if err := store.Put(ctx, sess); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := store.Get(ctx, "user-1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Seed != 42 || !got.HasSeen("v1") || !got.HasSeen("v2") || len(got.Seen) != 2 {
				t.Errorf("Get returned %+v", got)
			}
			if !got.LastTouchedAt.Equal(storeEpoch) {
				t.Errorf("LastTouchedAt = %v, want %v", got.LastTouchedAt, storeEpoch)
			}

			// Mutating the returned copy must not change the stored value.
			got.Seen["v3"] = struct{}{}
			again, _ := store.Get(ctx, "user-1")
			if again.HasSeen("v3") {
				t.Error("store leaked caller mutation")
			}

			if n, _ := store.Count(ctx); n != 1 {
				t.Errorf("Count = %d, want 1", n)
			}

			if err := store.Delete(ctx, "user-1"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := store.Delete(ctx, "user-1"); err != nil {
				t.Errorf("second Delete: %v", err)
			}
			if _, err := store.Get(ctx, "user-1"); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get after Delete: err = %v", err)
			}
		})
	}
}

func TestStore_DeleteIdle(t *testing.T) {
	for name, mk := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := mk()
			ctx := context.Background()

			fresh := New("fresh", 1, storeEpoch)
			stale := New("stale", 2, storeEpoch.Add(-2*time.Hour))
			for _, s := range []*Session{fresh, stale} {
				if err := store.Put(ctx, s); err != nil {
					t.Fatalf("Put: %v", err)
				}
			}

			n, err := store.DeleteIdle(ctx, storeEpoch.Add(-time.Hour))
			if err != nil {
				t.Fatalf("DeleteIdle: %v", err)
			}
			if n != 1 {
				t.Errorf("DeleteIdle removed %d, want 1", n)
			}
			if _, err := store.Get(ctx, "fresh"); err != nil {
				t.Errorf("fresh session removed: %v", err)
			}
			if _, err := store.Get(ctx, "stale"); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("stale session kept: %v", err)
			}
		})
	}
}

func TestNATSStore_KeyEncoding(t *testing.T) {
	store, err := NewNATSStore(context.Background(), newTestJetStream(t), NATSStoreConfig{Bucket: "sessions_keys"})
	if err != nil {
		t.Fatalf("NewNATSStore: %v", err)
	}
	ctx := context.Background()

	// Keys outside the KV alphabet must still round-trip.
	sess := New("user@example.com/42", 7, storeEpoch)
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, "user@example.com/42")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Key != sess.Key {
		t.Errorf("Key = %q, want %q", got.Key, sess.Key)
	}
}

func TestFactory(t *testing.T) {
	tests := []struct {
		name    string
		cfg     FactoryConfig
		wantErr bool
		want    string
	}{
		{"default memory", FactoryConfig{}, false, "*session.MemoryStore"},
		{"badger in memory", FactoryConfig{Type: StoreBadger}, false, "*session.BadgerStore"},
		{"nats without jetstream", FactoryConfig{Type: StoreNATS}, true, ""},
		{"unknown", FactoryConfig{Type: "redis"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFactory(tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFactory err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer f.Close()

			store, err := f.CreateStore(context.Background())
			if err != nil {
				t.Fatalf("CreateStore: %v", err)
			}
			if got := typeName(store); got != tt.want {
				t.Errorf("store type = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(s Store) string {
	switch s.(type) {
	case *MemoryStore:
		return "*session.MemoryStore"
	case *BadgerStore:
		return "*session.BadgerStore"
	case *NATSStore:
		return "*session.NATSStore"
	default:
		return "unknown"
	}
}
