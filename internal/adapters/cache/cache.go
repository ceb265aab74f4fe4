// Package cache provides the in-process fetch cache: a mutex-guarded map
// with per-entry TTLs. It is the default CacheStore when no Redis address is
// configured.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	body      string
	expiresAt time.Time // zero means no expiry
}

// Store implements ports.CacheStore in memory. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock substitutes the time source, letting tests control expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.body, true, nil
}

func (s *Store) Set(ctx context.Context, key, body string, ttl time.Duration) error {
	e := entry{body: body}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	return nil
}

func (s *Store) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	return nil
}

// Len reports the number of live entries, counting not-yet-collected expired
// ones. Used by browser statistics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Count reports the number of entries for browser statistics.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.Len(), nil
}
