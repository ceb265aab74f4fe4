// Package fetch retrieves document bodies over HTTP with a TTL'd body cache
// in front. It is the only part of the browser that talks to the network.
package fetch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/novabrowser/nova/internal/logging"
	"github.com/novabrowser/nova/internal/metrics"
	"github.com/novabrowser/nova/pkg/ports"
)

const (
	userAgent    = "NovaBrowser/1.0 (Secure Declarative Browser)"
	acceptHeader = "application/json,text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	// DefaultTimeout bounds one request end to end.
	DefaultTimeout = 30 * time.Second

	// DefaultTTL is how long a fetched body stays reusable.
	DefaultTTL = 5 * time.Minute

	// maxBodyBytes caps a response body; documents are small and a
	// misbehaving server must not exhaust memory.
	maxBodyBytes = 16 << 20
)

// Client implements ports.Fetcher. Responses outside the 2xx range and
// transport failures both surface as *ports.NetworkError; the caller decides
// whether to substitute an error document.
type Client struct {
	http    *http.Client
	cache   ports.CacheStore
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Client)

// WithHTTPClient substitutes the transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCache attaches a body cache. Without one every Fetch hits the network.
func WithCache(cache ports.CacheStore) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithTTL overrides the cache lifetime of fetched bodies.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics wires the cache hit/miss counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a Client with a 30 second request timeout.
func New(opts ...Option) *Client {
	c := &Client{
		http:   &http.Client{Timeout: DefaultTimeout},
		ttl:    DefaultTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cacheKey is the md5 hex digest of the URL, matching the on-disk and Redis
// key shape used since the first release.
func cacheKey(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Fetch returns the body at url, serving from cache when fresh.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	key := cacheKey(url)

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("cache read failed", "url", url, "error", err)
		} else if ok {
			c.logger.Debug("cache hit", "url", url)
			c.metrics.CacheHit()
			return body, nil
		}
	}
	c.metrics.CacheMiss()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &ports.NetworkError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	c.logger.Info("fetching url", "url", url)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ports.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ports.NetworkError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &ports.NetworkError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	body := string(data)

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
			c.logger.Warn("cache write failed", "url", url, "error", err)
		}
	}
	return body, nil
}
