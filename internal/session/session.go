// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package session

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

// ErrSessionNotFound is returned by Store.Get when no session exists for a key.
var ErrSessionNotFound = errors.New("session not found")

// Session is the anti-repeat state of one user's browsing session.
type Session struct {
	// Key is the user ID, or the guest key for anonymous callers.
	Key string

	// Seen holds the IDs of organic videos already served in this session.
	Seen map[string]struct{}

	// Seed is drawn when the session is created. It is informational and
	// does not drive any shuffle.
	Seed int

	CreatedAt     time.Time
	LastTouchedAt time.Time
}

// New returns an empty session created at now.
func New(key string, seed int, now time.Time) *Session {
	return &Session{
		Key:           key,
		Seen:          make(map[string]struct{}),
		Seed:          seed,
		CreatedAt:     now,
		LastTouchedAt: now,
	}
}

// Expired reports whether the session has been idle longer than ttl.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastTouchedAt) > ttl
}

// HasSeen reports whether id was already served in this session.
func (s *Session) HasSeen(id string) bool {
	_, ok := s.Seen[id]
	return ok
}

// SeenIDs returns the seen set as a sorted slice.
func (s *Session) SeenIDs() []string {
	ids := make([]string, 0, len(s.Seen))
	for id := range s.Seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Seen = make(map[string]struct{}, len(s.Seen))
	for id := range s.Seen {
		c.Seen[id] = struct{}{}
	}
	return &c
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the session stored under key, or ErrSessionNotFound.
	Get(ctx context.Context, key string) (*Session, error)

	// Put creates or replaces the session stored under sess.Key.
	Put(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteIdle removes every session last touched before cutoff and
	// returns how many were removed.
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

// storedSession is the wire form shared by the persistent stores.
type storedSession struct {
	Key           string    `json:"key"`
	Seen          []string  `json:"seen"`
	Seed          int       `json:"seed"`
	CreatedAt     time.Time `json:"created_at"`
	LastTouchedAt time.Time `json:"last_touched_at"`
}

func encode(sess *Session) ([]byte, error) {
	return json.Marshal(storedSession{
		Key:           sess.Key,
		Seen:          sess.SeenIDs(),
		Seed:          sess.Seed,
		CreatedAt:     sess.CreatedAt,
		LastTouchedAt: sess.LastTouchedAt,
	})
}

func decode(data []byte) (*Session, error) {
	var st storedSession
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	sess := &Session{
		Key:           st.Key,
		Seen:          make(map[string]struct{}, len(st.Seen)),
		Seed:          st.Seed,
		CreatedAt:     st.CreatedAt,
		LastTouchedAt: st.LastTouchedAt,
	}
	for _, id := range st.Seen {
		sess.Seen[id] = struct{}{}
	}
	return sess, nil
}
