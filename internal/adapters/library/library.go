// Package library resolves file:/// documents from the local document
// library. A handful of builtin documents (the welcome page) ship with
// the browser; everything else is read from a Loam repository where
// each entry is a markdown file whose front matter describes the
// document and whose body is the document JSON itself.
package library

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/novabrowser/nova/internal/logging"
	"github.com/novabrowser/nova/pkg/ports"
)

// DocumentInfo is the front matter of a library entry.
type DocumentInfo struct {
	Title       string   `json:"title" mapstructure:"title"`
	Description string   `json:"description" mapstructure:"description"`
	Tags        []string `json:"tags" mapstructure:"tags"`
}

// Entry describes one document the resolver can serve.
type Entry struct {
	Key         string
	Title       string
	Description string
}

// Resolver implements ports.Resolver over builtins plus an optional
// on-disk library.
type Resolver struct {
	builtins map[string]string
	repo     *loam.TypedRepository[DocumentInfo]
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver. With an empty dir only the builtin documents
// are served; otherwise dir is opened as a read-only Loam repository.
func New(dir string, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		builtins: builtinDocuments(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if dir == "" {
		return r, nil
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid library path: %w", err)
	}

	// Strict mode keeps numeric front matter types consistent across
	// adapters; read-only mode keeps Loam out of its sandbox behavior.
	// The browser never writes to the library.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open document library: %w", err)
	}
	r.repo = loam.NewTypedRepository[DocumentInfo](repo)

	return r, nil
}

// Resolve returns the raw document body for a local key. Keys are the
// path portion of a file:/// URL; a leading slash and a .nova suffix
// are both accepted and ignored.
func (r *Resolver) Resolve(ctx context.Context, key string) (string, error) {
	key = normalizeKey(key)

	if body, ok := r.builtins[trimExtension(key)]; ok {
		return body, nil
	}

	if r.repo == nil {
		return "", fmt.Errorf("document %q: %w", key, ports.ErrNotFound)
	}

	doc, err := r.repo.Get(ctx, trimExtension(key))
	if err != nil {
		r.logger.Debug("library lookup failed", "key", key, "err", err)
		return "", fmt.Errorf("document %q: %w", key, ports.ErrNotFound)
	}
	return doc.Content, nil
}

// List returns the catalog of documents the resolver can serve, builtins
// first, library entries sorted by key.
func (r *Resolver) List(ctx context.Context) ([]Entry, error) {
	entries := builtinEntries()

	if r.repo == nil {
		return entries, nil
	}

	docs, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list document library: %w", err)
	}

	library := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		key := trimExtension(doc.ID)
		title := doc.Data.Title
		if title == "" {
			title = key
		}
		library = append(library, Entry{
			Key:         key,
			Title:       title,
			Description: doc.Data.Description,
		})
	}
	sort.Slice(library, func(i, j int) bool { return library[i].Key < library[j].Key })

	return append(entries, library...), nil
}

func normalizeKey(key string) string {
	return strings.TrimPrefix(key, "/")
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
