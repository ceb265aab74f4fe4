// Package browser is the runtime behind every Nova surface: it owns the
// tab list, routes URLs to the network or the local document library,
// turns load failures into renderable error pages, and executes the
// actions a document exposes.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/novabrowser/nova/internal/config"
	"github.com/novabrowser/nova/internal/logging"
	"github.com/novabrowser/nova/internal/metrics"
	"github.com/novabrowser/nova/internal/theme"
	"github.com/novabrowser/nova/pkg/document"
	"github.com/novabrowser/nova/pkg/ports"
)

// ErrNoTab is returned by operations that need an open tab when the
// engine has none.
var ErrNoTab = errors.New("no open tab")

// ErrNoEarlierPage is returned by Back when the active tab's trail has
// no previous entry.
var ErrNoEarlierPage = errors.New("no earlier page in this tab")

// Deps are the collaborators an Engine works against. Nil stores are
// tolerated: the matching features degrade to no-ops or report that
// they are not configured.
type Deps struct {
	Fetcher   ports.Fetcher
	Resolver  ports.Resolver
	History   ports.HistoryStore
	Bookmarks ports.BookmarkStore
	KV        ports.KVStore
	Cache     ports.CacheStore
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Theme     string
	SearchURL string
	Home      string
}

// Engine drives tabs and documents for one browser instance.
type Engine struct {
	fetcher   ports.Fetcher
	resolver  ports.Resolver
	history   ports.HistoryStore
	bookmarks ports.BookmarkStore
	kv        ports.KVStore
	cache     ports.CacheStore
	logger    *slog.Logger
	metrics   *metrics.Metrics
	searchURL string
	home      string

	mu       sync.Mutex
	theme    *theme.Theme
	tabs     []*Tab
	active   string
	formData map[string]string
}

// New creates an Engine over the given collaborators.
func New(deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	searchURL := deps.SearchURL
	if searchURL == "" {
		searchURL = config.DefaultSearchURL
	}
	home := deps.Home
	if home == "" {
		home = config.DefaultHome
	}
	return &Engine{
		fetcher:   deps.Fetcher,
		resolver:  deps.Resolver,
		history:   deps.History,
		bookmarks: deps.Bookmarks,
		kv:        deps.KV,
		cache:     deps.Cache,
		logger:    logger,
		metrics:   deps.Metrics,
		searchURL: searchURL,
		home:      home,
		theme:     theme.New(deps.Theme),
		formData:  make(map[string]string),
	}
}

// Home returns the URL loaded on startup.
func (e *Engine) Home() string { return e.home }

// Theme returns the active theme.
func (e *Engine) Theme() *theme.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

// SetTheme switches the active theme by name.
func (e *Engine) SetTheme(name string) error {
	if !theme.Known(name) {
		return fmt.Errorf("unknown theme %q (have %s)", name, strings.Join(theme.Names(), ", "))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.theme = theme.New(name)
	return nil
}

// NewTab opens an empty tab and makes it active. Nothing is loaded
// into it until Load is called.
func (e *Engine) NewTab(url string) *Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.newTabLocked(url)
}

func (e *Engine) newTabLocked(url string) *Tab {
	tab := newTab(url)
	e.tabs = append(e.tabs, tab)
	e.active = tab.ID
	return tab
}

// Tabs returns the open tabs in creation order.
func (e *Engine) Tabs() []*Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Tab, len(e.tabs))
	copy(out, e.tabs)
	return out
}

// ActiveTab returns the tab user input is routed to, or nil when no
// tab is open.
func (e *Engine) ActiveTab() *Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeLocked()
}

func (e *Engine) activeLocked() *Tab {
	for _, tab := range e.tabs {
		if tab.ID == e.active {
			return tab
		}
	}
	return nil
}

// SelectTab makes the tab with the given ID active.
func (e *Engine) SelectTab(id string) (*Tab, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, tab := range e.tabs {
		if tab.ID == id {
			e.active = id
			tab.LastAccessed = time.Now()
			return tab, true
		}
	}
	return nil, false
}

// CloseTab removes a tab. Closing the active tab activates the most
// recently opened remaining one.
func (e *Engine) CloseTab(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, tab := range e.tabs {
		if tab.ID != id {
			continue
		}
		e.tabs = append(e.tabs[:i], e.tabs[i+1:]...)
		if e.active == id {
			e.active = ""
			if len(e.tabs) > 0 {
				e.active = e.tabs[len(e.tabs)-1].ID
			}
		}
		return true
	}
	return false
}

// Load loads a URL into the active tab, opening one if needed. The
// returned tab always carries a renderable document: failures install
// a synthesized error page and are also returned as the error.
func (e *Engine) Load(ctx context.Context, rawURL string) (*Tab, error) {
	e.mu.Lock()
	tab := e.activeLocked()
	if tab == nil {
		tab = e.newTabLocked(rawURL)
	}
	e.mu.Unlock()
	return e.LoadInTab(ctx, tab, rawURL)
}

// LoadInTab loads a URL into a specific tab.
func (e *Engine) LoadInTab(ctx context.Context, tab *Tab, rawURL string) (*Tab, error) {
	start := time.Now()
	e.logger.Info("loading document", "url", rawURL)

	var body string
	var err error
	switch {
	case strings.HasPrefix(rawURL, "http://"), strings.HasPrefix(rawURL, "https://"):
		if e.fetcher == nil {
			return e.failLoad(tab, rawURL, start, ErrorDocument("Network access is not configured", rawURL),
				errors.New("network access is not configured"))
		}
		body, err = e.fetcher.Fetch(ctx, rawURL)
	case strings.HasPrefix(rawURL, "file:///"):
		key := strings.TrimPrefix(rawURL, "file:///")
		if e.resolver == nil {
			err = fmt.Errorf("document %q: %w", key, ports.ErrNotFound)
		} else {
			body, err = e.resolver.Resolve(ctx, key)
		}
		if errors.Is(err, ports.ErrNotFound) {
			return e.failLoad(tab, rawURL, start, NotFound(key), err)
		}
	default:
		err = fmt.Errorf("unsupported protocol: %s", rawURL)
		return e.failLoad(tab, rawURL, start, UnsupportedProtocol(rawURL), err)
	}
	if err != nil {
		return e.failLoad(tab, rawURL, start, ErrorDocument(err.Error(), rawURL), err)
	}

	doc, err := document.ParseString(body)
	if err != nil {
		return e.failLoad(tab, rawURL, start, ErrorDocument(err.Error(), rawURL), err)
	}
	e.metrics.ObserveParse(doc.Metrics.ParseDuration)

	meta := pageMeta(doc)
	title := meta.Title
	if title == "" {
		title = rawURL
	}

	e.mu.Lock()
	tab.URL = rawURL
	tab.Document = doc
	tab.Meta = meta
	tab.Title = title
	tab.Permissions = doc.Requires
	tab.LoadTime = time.Since(start)
	tab.LastAccessed = time.Now()
	tab.rememberVisit(rawURL)
	e.mu.Unlock()

	if e.history != nil {
		if herr := e.history.RecordVisit(ctx, rawURL, title); herr != nil {
			e.logger.Warn("failed to record visit", "url", rawURL, "err", herr)
		}
	}
	e.metrics.LoadOutcome(metrics.OutcomeOK)
	e.logger.Info("document loaded", "url", rawURL, "title", title, "elapsed", tab.LoadTime)
	return tab, nil
}

// failLoad installs a synthesized error page so the tab stays
// renderable, and reports the underlying cause.
func (e *Engine) failLoad(tab *Tab, rawURL string, start time.Time, errBody string, cause error) (*Tab, error) {
	e.logger.Error("failed to load document", "url", rawURL, "err", cause)
	e.metrics.LoadOutcome(metrics.OutcomeError)

	doc, perr := document.ParseString(errBody)
	if perr != nil {
		// Synthesized pages are built from literal layouts; if one does
		// not parse the builder itself is broken.
		e.logger.Error("error page did not parse", "err", perr)
		return tab, cause
	}

	e.mu.Lock()
	tab.URL = rawURL
	tab.Document = doc
	tab.Meta = pageMeta(doc)
	tab.Title = doc.Title(rawURL)
	tab.Permissions = nil
	tab.LoadTime = time.Since(start)
	tab.LastAccessed = time.Now()
	e.mu.Unlock()

	return tab, cause
}

// Back loads the previous entry of the active tab's trail.
func (e *Engine) Back(ctx context.Context) (*Tab, error) {
	e.mu.Lock()
	tab := e.activeLocked()
	if tab == nil {
		e.mu.Unlock()
		return nil, ErrNoTab
	}
	url, ok := tab.BackURL()
	if !ok {
		e.mu.Unlock()
		return tab, ErrNoEarlierPage
	}
	tab.HistoryIndex--
	e.mu.Unlock()
	return e.LoadInTab(ctx, tab, url)
}

// Reload loads the active tab's URL again.
func (e *Engine) Reload(ctx context.Context) (*Tab, error) {
	e.mu.Lock()
	tab := e.activeLocked()
	e.mu.Unlock()
	if tab == nil {
		return nil, ErrNoTab
	}
	return e.LoadInTab(ctx, tab, tab.URL)
}

// Stats is a point-in-time snapshot of browser state.
type Stats struct {
	Tabs           int
	HistoryEntries int
	Bookmarks      int
	CacheEntries   int
	ActiveTitle    string
	Theme          string
}

type cacheCounter interface {
	Count(ctx context.Context) (int, error)
}

// Stats gathers counters across the engine's stores. Stores that fail
// or are absent simply report zero.
func (e *Engine) Stats(ctx context.Context) Stats {
	e.mu.Lock()
	s := Stats{Tabs: len(e.tabs), Theme: e.theme.Name()}
	if tab := e.activeLocked(); tab != nil {
		s.ActiveTitle = tab.Title
	}
	e.mu.Unlock()

	if e.history != nil {
		if visits, err := e.history.Recent(ctx, 0); err == nil {
			s.HistoryEntries = len(visits)
		}
	}
	if e.bookmarks != nil {
		if marks, err := e.bookmarks.List(ctx); err == nil {
			s.Bookmarks = len(marks)
		}
	}
	if counter, ok := e.cache.(cacheCounter); ok {
		if n, err := counter.Count(ctx); err == nil {
			s.CacheEntries = n
		}
	}
	return s
}

// RecentHistory returns the last n visits, most recent last.
func (e *Engine) RecentHistory(ctx context.Context, n int) ([]ports.Visit, error) {
	if e.history == nil {
		return nil, errors.New("history is not configured")
	}
	return e.history.Recent(ctx, n)
}

// ClearHistory drops all recorded visits.
func (e *Engine) ClearHistory(ctx context.Context) error {
	if e.history == nil {
		return errors.New("history is not configured")
	}
	return e.history.Clear(ctx)
}

// BookmarkActiveTab stores the active tab's URL and title as a bookmark.
func (e *Engine) BookmarkActiveTab(ctx context.Context) (ports.Bookmark, error) {
	if e.bookmarks == nil {
		return ports.Bookmark{}, errors.New("bookmarks are not configured")
	}
	tab := e.ActiveTab()
	if tab == nil {
		return ports.Bookmark{}, ErrNoTab
	}
	mark := ports.Bookmark{URL: tab.URL, Title: tab.Title, AddedAt: time.Now()}
	if err := e.bookmarks.Add(ctx, mark); err != nil {
		return ports.Bookmark{}, err
	}
	return mark, nil
}

// Bookmarks lists stored bookmarks.
func (e *Engine) Bookmarks(ctx context.Context) ([]ports.Bookmark, error) {
	if e.bookmarks == nil {
		return nil, errors.New("bookmarks are not configured")
	}
	return e.bookmarks.List(ctx)
}

// RemoveBookmark deletes a bookmark by URL.
func (e *Engine) RemoveBookmark(ctx context.Context, url string) error {
	if e.bookmarks == nil {
		return errors.New("bookmarks are not configured")
	}
	return e.bookmarks.Remove(ctx, url)
}

// FormValue returns the last value captured for an input id.
func (e *Engine) FormValue(id string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.formData[id]
	return v, ok
}

// FormData returns a copy of all captured input values.
func (e *Engine) FormData() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.formData))
	for k, v := range e.formData {
		out[k] = v
	}
	return out
}

// SetFormValue records a value for an input id. Surfaces with their own
// input widgets write through this instead of prompting.
func (e *Engine) SetFormValue(id, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.formData[id] = value
}
