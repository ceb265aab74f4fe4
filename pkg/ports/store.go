package ports

import (
	"context"
	"time"
)

// Visit is one browsing-history entry. Revisiting a URL bumps VisitCount and
// moves the entry to the end instead of appending a duplicate.
type Visit struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	VisitedAt  time.Time `json:"visited_at"`
	VisitCount int       `json:"visit_count"`
}

// Bookmark is a saved document reference, keyed by URL.
type Bookmark struct {
	URL     string    `json:"url"`
	Title   string    `json:"title"`
	AddedAt time.Time `json:"added_at"`
}

// VisitRecorder is the write half of HistoryStore. The load pipeline depends
// on this narrow interface only.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, url, title string) error
}

// HistoryStore persists browsing history.
type HistoryStore interface {
	VisitRecorder

	// Recent returns up to n visits in chronological order, most recent
	// last.
	Recent(ctx context.Context, n int) ([]Visit, error)

	// Clear removes all visits.
	Clear(ctx context.Context) error
}

// BookmarkStore persists bookmarks. Adding a URL that already exists replaces
// its entry.
type BookmarkStore interface {
	Add(ctx context.Context, b Bookmark) error
	List(ctx context.Context) ([]Bookmark, error)

	// Remove deletes the bookmark for url, or returns ErrNotFound.
	Remove(ctx context.Context, url string) error
}

// KVStore persists values written by "store" actions. Values are arbitrary
// JSON-representable data; numeric round-trips may widen to float64 depending
// on the backend.
type KVStore interface {
	Set(ctx context.Context, key string, value any) error

	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (any, error)

	Keys(ctx context.Context) ([]string, error)
}

// CacheStore is a TTL'd body cache used by the fetch adapter.
type CacheStore interface {
	// Get returns the cached body and whether the key was present and
	// still fresh. A miss is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores body under key for ttl. Non-positive ttl means no expiry.
	Set(ctx context.Context, key, body string, ttl time.Duration) error

	// Purge drops every entry.
	Purge(ctx context.Context) error
}
