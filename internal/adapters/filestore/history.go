package filestore

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/novabrowser/nova/pkg/ports"
)

// maxHistoryEntries caps history.json; the oldest entries are dropped first.
const maxHistoryEntries = 5000

// History implements ports.HistoryStore in a single JSON file.
type History struct {
	path string

	mu     sync.Mutex
	visits []ports.Visit
	now    func() time.Time
}

// NewHistory opens (or creates) the history store inside dir.
func NewHistory(dir string) (*History, error) {
	h := &History{
		path: filepath.Join(dir, historyFile),
		now:  time.Now,
	}
	if err := loadJSON(h.path, &h.visits); err != nil {
		return nil, err
	}
	return h, nil
}

// RecordVisit appends a visit. Revisiting a known URL bumps its count,
// refreshes the title and timestamp and moves the entry to the end rather
// than appending a duplicate.
func (h *History) RecordVisit(ctx context.Context, url, title string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, v := range h.visits {
		if v.URL == url {
			v.VisitCount++
			v.Title = title
			v.VisitedAt = h.now().UTC()
			h.visits = append(append(h.visits[:i:i], h.visits[i+1:]...), v)
			return saveJSON(h.path, h.visits)
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
	return saveJSON(h.path, h.visits)
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
	return saveJSON(h.path, []ports.Visit{})
}
