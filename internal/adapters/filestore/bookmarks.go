package filestore

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/novabrowser/nova/pkg/ports"
)

// Bookmarks implements ports.BookmarkStore in a single JSON file.
type Bookmarks struct {
	path string

	mu    sync.Mutex
	marks []ports.Bookmark
}

// NewBookmarks opens (or creates) the bookmark store inside dir.
func NewBookmarks(dir string) (*Bookmarks, error) {
	b := &Bookmarks{path: filepath.Join(dir, bookmarksFile)}
	if err := loadJSON(b.path, &b.marks); err != nil {
		return nil, err
	}
	return b, nil
}

// Add stores a bookmark, replacing any existing entry for the same URL in
// place.
func (b *Bookmarks) Add(ctx context.Context, mark ports.Bookmark) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, existing := range b.marks {
		if existing.URL == mark.URL {
			b.marks[i] = mark
			return saveJSON(b.path, b.marks)
		}
	}
	b.marks = append(b.marks, mark)
	return saveJSON(b.path, b.marks)
}

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

	for i, existing := range b.marks {
		if existing.URL == url {
			b.marks = append(b.marks[:i:i], b.marks[i+1:]...)
			return saveJSON(b.path, b.marks)
		}
	}
	return ports.ErrNotFound
}
