package browser

import (
	"time"

	"github.com/google/uuid"

	"github.com/novabrowser/nova/pkg/document"
)

// Tab is one browsing context: a URL, its parsed document, and the
// per-tab visit trail used for back navigation.
type Tab struct {
	ID           string
	URL          string
	Title        string
	Document     *document.Document
	Meta         PageMeta
	History      []string
	HistoryIndex int
	Permissions  []string
	LastAccessed time.Time
	LoadTime     time.Duration
}

func newTab(url string) *Tab {
	return &Tab{
		ID:           uuid.NewString(),
		URL:          url,
		Title:        "Loading...",
		HistoryIndex: -1,
		LastAccessed: time.Now(),
	}
}

// rememberVisit records an arrival at url in the tab trail. Arriving at
// the entry the index already points to (reload, back) leaves the trail
// untouched; navigating somewhere new after going back truncates the
// forward entries first.
func (t *Tab) rememberVisit(url string) {
	if t.HistoryIndex >= 0 && t.HistoryIndex < len(t.History) && t.History[t.HistoryIndex] == url {
		return
	}
	t.History = append(t.History[:t.HistoryIndex+1], url)
	t.HistoryIndex = len(t.History) - 1
}

// BackURL returns the previous entry in the tab trail, if there is one.
func (t *Tab) BackURL() (string, bool) {
	if t.HistoryIndex <= 0 || t.HistoryIndex >= len(t.History) {
		return "", false
	}
	return t.History[t.HistoryIndex-1], true
}
