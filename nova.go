package nova

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/novabrowser/nova/internal/adapters/cache"
	"github.com/novabrowser/nova/internal/adapters/fetch"
	"github.com/novabrowser/nova/internal/adapters/library"
	"github.com/novabrowser/nova/internal/browser"
	"github.com/novabrowser/nova/internal/logging"
	"github.com/novabrowser/nova/internal/metrics"
	"github.com/novabrowser/nova/internal/theme"
	"github.com/novabrowser/nova/pkg/document"
	"github.com/novabrowser/nova/pkg/ports"
	"github.com/novabrowser/nova/pkg/render"
)

// Browser is the high-level entry point for the Nova engine. It wires
// the document pipeline (fetch, parse, render, action catalog, dispatch)
// over a set of collaborators that default to side-effect free
// in-process implementations: in-memory cache, HTTP fetcher, builtin
// document library, no persistent stores. Hosts that want history,
// bookmarks or key-value storage inject them explicitly.
type Browser struct {
	engine   *browser.Engine
	renderer *render.Renderer
	logger   *slog.Logger
	metrics  *metrics.Metrics

	fetcher   ports.Fetcher
	resolver  ports.Resolver
	history   ports.HistoryStore
	bookmarks ports.BookmarkStore
	kv        ports.KVStore
	cache     ports.CacheStore

	themeName   string
	searchURL   string
	home        string
	libraryDir  string
	renderWidth int
	cacheTTL    time.Duration

	closers []io.Closer
}

// Option defines a functional option for configuring the Browser.
type Option func(*Browser)

// WithLogger sets a structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Browser) {
		b.logger = logger
	}
}

// WithFetcher injects a custom network fetcher.
func WithFetcher(f ports.Fetcher) Option {
	return func(b *Browser) {
		b.fetcher = f
	}
}

// WithResolver injects a custom resolver for file:/// documents.
func WithResolver(r ports.Resolver) Option {
	return func(b *Browser) {
		b.resolver = r
	}
}

// WithHistory injects a visit history store.
func WithHistory(h ports.HistoryStore) Option {
	return func(b *Browser) {
		b.history = h
	}
}

// WithBookmarks injects a bookmark store.
func WithBookmarks(s ports.BookmarkStore) Option {
	return func(b *Browser) {
		b.bookmarks = s
	}
}

// WithKV injects the key-value store used by "store" actions and form
// submissions.
func WithKV(kv ports.KVStore) Option {
	return func(b *Browser) {
		b.kv = kv
	}
}

// WithCache injects the fetch cache shared by the network adapter.
func WithCache(c ports.CacheStore) Option {
	return func(b *Browser) {
		b.cache = c
	}
}

// WithCacheTTL sets how long fetched bodies stay cached. It applies to
// the default fetcher only; an injected fetcher manages its own TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(b *Browser) {
		b.cacheTTL = ttl
	}
}

// WithTheme selects the startup theme by name.
func WithTheme(name string) Option {
	return func(b *Browser) {
		b.themeName = name
	}
}

// WithMetrics injects a metrics registry. The default is a private one.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Browser) {
		b.metrics = m
	}
}

// WithSearchURL overrides the search engine URL template the query is
// appended to.
func WithSearchURL(url string) Option {
	return func(b *Browser) {
		b.searchURL = url
	}
}

// WithHome overrides the home document URL.
func WithHome(url string) Option {
	return func(b *Browser) {
		b.home = url
	}
}

// WithLibraryDir serves file:/// documents from a loam repository at
// dir, in addition to the builtins. Ignored when a resolver is injected.
func WithLibraryDir(dir string) Option {
	return func(b *Browser) {
		b.libraryDir = dir
	}
}

// WithRenderWidth overrides the wrap width of the text renderer.
func WithRenderWidth(width int) Option {
	return func(b *Browser) {
		b.renderWidth = width
	}
}

// New initializes a Browser. Every collaborator left unset gets a
// default that needs no configuration and touches no disk.
func New(opts ...Option) (*Browser, error) {
	b := &Browser{}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.themeName != "" && !theme.Known(b.themeName) {
		return nil, fmt.Errorf("unknown theme %q", b.themeName)
	}
	if b.metrics == nil {
		b.metrics = metrics.New()
	}
	if b.cache == nil {
		b.cache = cache.New()
	}
	if b.fetcher == nil {
		fetchOpts := []fetch.Option{
			fetch.WithCache(b.cache),
			fetch.WithLogger(b.logger),
			fetch.WithMetrics(b.metrics),
		}
		if b.cacheTTL > 0 {
			fetchOpts = append(fetchOpts, fetch.WithTTL(b.cacheTTL))
		}
		b.fetcher = fetch.New(fetchOpts...)
	}
	if b.resolver == nil {
		resolver, err := library.New(b.libraryDir, library.WithLogger(b.logger))
		if err != nil {
			return nil, err
		}
		b.resolver = resolver
	}

	renderOpts := []render.Option{render.WithObserver(b.metrics.RenderObserver())}
	if b.renderWidth > 0 {
		renderOpts = append(renderOpts, render.WithWidth(b.renderWidth))
	}
	b.renderer = render.New(renderOpts...)

	b.engine = browser.New(browser.Deps{
		Fetcher:   b.fetcher,
		Resolver:  b.resolver,
		History:   b.history,
		Bookmarks: b.bookmarks,
		KV:        b.kv,
		Cache:     b.cache,
		Logger:    b.logger,
		Metrics:   b.metrics,
		Theme:     b.themeName,
		SearchURL: b.searchURL,
		Home:      b.home,
	})

	// Injected collaborators own external resources (sqlite handles,
	// redis clients); flush them on Close.
	for _, dep := range []any{b.history, b.bookmarks, b.kv, b.cache, b.fetcher, b.resolver} {
		if closer, ok := dep.(io.Closer); ok {
			b.closers = append(b.closers, closer)
		}
	}

	return b, nil
}

// Engine exposes the tab runtime: tabs, back/reload, stats, bookmarks.
func (b *Browser) Engine() *browser.Engine { return b.engine }

// Metrics exposes the metrics registry, e.g. for serving /metrics.
func (b *Browser) Metrics() *metrics.Metrics { return b.metrics }

// Home returns the URL loaded on startup.
func (b *Browser) Home() string { return b.engine.Home() }

// Load fetches, parses and installs a document into the active tab
// (opening one if needed). The returned tab always carries a renderable
// document; the error reports why a synthesized error page is shown.
func (b *Browser) Load(ctx context.Context, url string) (*browser.Tab, error) {
	return b.engine.Load(ctx, url)
}

// Parse validates a raw document body without touching any tab.
func (b *Browser) Parse(body string) (*document.Document, error) {
	doc, err := document.ParseString(body)
	if err != nil {
		return nil, err
	}
	b.metrics.ObserveParse(doc.Metrics.ParseDuration)
	return doc, nil
}

// Fetch retrieves a raw body over the network, through the cache.
func (b *Browser) Fetch(ctx context.Context, url string) (string, error) {
	return b.fetcher.Fetch(ctx, url)
}

// Render walks a document onto a surface.
func (b *Browser) Render(doc *document.Document, s ports.Surface) {
	b.renderer.RenderDocument(doc, s)
}

// RenderToString renders a document into a plain string.
func (b *Browser) RenderToString(doc *document.Document) string {
	return b.renderer.RenderToString(doc)
}

// Actions returns the ordered action catalog of a document.
func (b *Browser) Actions(doc *document.Document) []document.Action {
	if doc == nil {
		return nil
	}
	return document.CollectActions(doc.Layout)
}

// Dispatch executes one action against the engine. The prompter serves
// interactive actions; pass nil on non-interactive hosts.
func (b *Browser) Dispatch(ctx context.Context, action document.Action, p ports.Prompter) error {
	return b.engine.Dispatch(ctx, action, p)
}

// Close flushes and releases every collaborator that holds external
// resources.
func (b *Browser) Close() error {
	var errs []error
	for _, closer := range b.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
