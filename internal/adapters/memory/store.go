// Package memory implements the store ports in process memory. It backs
// the "storage: memory" configuration for ephemeral hosts and keeps the
// engine's defaults free of disk state.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/novabrowser/nova/pkg/ports"
)

// maxHistoryEntries matches the on-disk stores; the oldest entries are
// dropped first.
const maxHistoryEntries = 5000

// History implements ports.HistoryStore. Safe for concurrent use.
type History struct {
	mu     sync.Mutex
	visits []ports.Visit
	now    func() time.Time
}

// NewHistory returns an empty in-memory history store.
func NewHistory() *History {
	return &History{now: time.Now}
}

// RecordVisit appends a visit. Revisiting a known URL bumps its count,
// refreshes the title and timestamp and moves the entry to the end.
func (h *History) RecordVisit(ctx context.Context, url, title string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, v := range h.visits {
		if v.URL == url {
			v.VisitCount++
			v.Title = title
			v.VisitedAt = h.now().UTC()
			h.visits = append(append(h.visits[:i:i], h.visits[i+1:]...), v)
			return nil
		}
	}

	h.visits = append(h.visits, ports.Visit{
		URL:        url,
		Title:      title,
		VisitedAt:  h.now().UTC(),
		VisitCount: 1,
	})
	if len(h.visits) > maxHistoryEntries {
		h.visits = h.visits[len(h.visits)-maxHistoryEntries:]
	}
	return nil
}

// Recent returns the last n visits in chronological order. n <= 0 returns
// everything.
func (h *History) Recent(ctx context.Context, n int) ([]ports.Visit, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	visits := h.visits
	if n > 0 && len(visits) > n {
		visits = visits[len(visits)-n:]
	}
	out := make([]ports.Visit, len(visits))
	copy(out, visits)
	return out, nil
}

func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visits = nil
	return nil
}

// Bookmarks implements ports.BookmarkStore. Safe for concurrent use.
type Bookmarks struct {
	mu    sync.Mutex
	marks []ports.Bookmark
}

// NewBookmarks returns an empty in-memory bookmark store.
func NewBookmarks() *Bookmarks {
	return &Bookmarks{}
}

// Add saves a bookmark, replacing any existing entry for the same URL in
// place.
func (b *Bookmarks) Add(ctx context.Context, mark ports.Bookmark) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, m := range b.marks {
		if m.URL == mark.URL {
			b.marks[i] = mark
			return nil
		}
	}
	b.marks = append(b.marks, mark)
	return nil
}

// List returns bookmarks in insertion order.
func (b *Bookmarks) List(ctx context.Context) ([]ports.Bookmark, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]ports.Bookmark, len(b.marks))
	copy(out, b.marks)
	return out, nil
}

func (b *Bookmarks) Remove(ctx context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, m := range b.marks {
		if m.URL == url {
			b.marks = append(b.marks[:i:i], b.marks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("bookmark %q: %w", url, ports.ErrNotFound)
}

// KV implements ports.KVStore. Values are kept as given; nothing widens
// to float64 here. Safe for concurrent use.
type KV struct {
	mu     sync.Mutex
	values map[string]any
}

// NewKV returns an empty in-memory key-value store.
func NewKV() *KV {
	return &KV{values: make(map[string]any)}
}

func (k *KV) Set(ctx context.Context, key string, value any) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[key] = value
	return nil
}

func (k *KV) Get(ctx context.Context, key string) (any, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	value, ok := k.values[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, ports.ErrNotFound)
	}
	return value, nil
}

func (k *KV) Keys(ctx context.Context) ([]string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	keys := make([]string, 0, len(k.values))
	for key := range k.values {
		keys = append(keys, key)
	}
	return keys, nil
}
