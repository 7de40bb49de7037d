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
)

// Key prefix for BadgerDB storage.
const badgerKeyPrefix = "feedsession:"

// BadgerStore implements Store on BadgerDB. Entries carry a TTL so that
// abandoned sessions disappear even if the sweeper is not running.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerStore creates a store over an open BadgerDB. A zero ttl stores
// entries without expiry.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	return &BadgerStore{db: db, ttl: ttl}
}

func badgerKey(key string) []byte {
	return []byte(badgerKeyPrefix + key)
}

// Get retrieves a session by key.
func (s *BadgerStore) Get(_ context.Context, key string) (*Session, error) {
	var sess *Session

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		return item.Value(func(val []byte) error {
			decoded, err := decode(val)
			if err != nil {
				return fmt.Errorf("unmarshal session: %w", err)
			}
			sess = decoded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Put creates or replaces a session.
func (s *BadgerStore) Put(_ context.Context, sess *Session) error {
	data, err := encode(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(badgerKey(sess.Key), data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		return nil
	})
}

// Delete removes a session by key.
func (s *BadgerStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(badgerKey(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// DeleteIdle removes sessions last touched before cutoff.
func (s *BadgerStore) DeleteIdle(_ context.Context, cutoff time.Time) (int, error) {
	var idle [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			var sess *Session
			err := item.Value(func(val []byte) error {
				decoded, err := decode(val)
				sess = decoded
				return err
			})
			if err != nil {
				// Undecodable entries are treated as idle.
				idle = append(idle, item.KeyCopy(nil))
				continue
			}
			if sess.LastTouchedAt.Before(cutoff) {
				idle = append(idle, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}
	if len(idle) == 0 {
		return 0, nil
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range idle {
		if err := wb.Delete(key); err != nil {
			return 0, fmt.Errorf("delete session: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush session deletes: %w", err)
	}
	return len(idle), nil
}

// Count returns the number of live sessions.
func (s *BadgerStore) Count(_ context.Context) (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}
