// Package httpapi serves the document pipeline over HTTP for local
// tooling: render and validate documents, proxy fetches through the
// caching client, and expose the Prometheus registry.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novabrowser/nova/internal/browser"
	"github.com/novabrowser/nova/internal/logging"
	"github.com/novabrowser/nova/pkg/document"
)

// maxDocumentBytes caps a request body. Documents larger than this are
// rejected before parsing.
const maxDocumentBytes = 1 << 20

// Browser is the engine surface the API exposes. The root nova.Browser
// satisfies it; tests may substitute a lighter implementation.
type Browser interface {
	Parse(body string) (*document.Document, error)
	RenderToString(doc *document.Document) string
	Actions(doc *document.Document) []document.Action
	Fetch(ctx context.Context, url string) (string, error)
}

// Server holds the handler dependencies.
type Server struct {
	browser  Browser
	logger   *slog.Logger
	registry *prometheus.Registry
}

// Option adjusts the Server before routes are mounted.
type Option func(*Server)

// WithLogger attaches a request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry mounts GET /metrics over the given registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// NewHandler mounts the API routes and returns the root handler.
func NewHandler(b Browser, opts ...Option) http.Handler {
	s := &Server{browser: b, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors)

	r.Get("/healthz", s.health)
	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.render)
		r.Post("/validate", s.validate)
		r.Get("/fetch", s.fetch)
	})
	return r
}

type renderResponse struct {
	Title   string          `json:"title"`
	Text    string          `json:"text"`
	Actions []actionPayload `json:"actions"`
}

type actionPayload struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Destination string `json:"destination,omitempty"`
	Key         string `json:"key,omitempty"`
	MediaID     string `json:"media_id,omitempty"`
	Command     string `json:"command,omitempty"`
	FormID      string `json:"form_id,omitempty"`
	SearchQuery string `json:"search_query,omitempty"`
	ThemeName   string `json:"theme_name,omitempty"`
}

type validateResponse struct {
	Valid   bool   `json:"valid"`
	Kind    string `json:"kind,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
}

type fetchResponse struct {
	URL  string `json:"url"`
	Body string `json:"body"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// render parses the request body as a document and returns the rendered
// text together with the action catalog.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	doc, err := s.browser.Parse(body)
	if err != nil {
		s.writeParseFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, renderResponse{
		Title:   doc.Title(""),
		Text:    s.browser.RenderToString(doc),
		Actions: mapActions(s.browser.Actions(doc)),
	})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	if _, err := s.browser.Parse(body); err != nil {
		s.writeParseFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, validateResponse{Valid: true})
}

func (s *Server) fetch(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url parameter is required"})
		return
	}
	body, err := s.browser.Fetch(r.Context(), url)
	if err != nil {
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, fetchResponse{URL: url, Body: body})
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes+1))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read request body: " + err.Error()})
		return "", false
	}
	if len(body) > maxDocumentBytes {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "document exceeds 1 MiB"})
		return "", false
	}
	return string(body), true
}

// writeParseFailure maps the parse taxonomy onto a structured 422.
func (s *Server) writeParseFailure(w http.ResponseWriter, err error) {
	resp := validateResponse{Valid: false, Message: err.Error()}
	var ferr *document.FormatError
	if errors.As(err, &ferr) {
		resp.Kind = kindToken(ferr.Kind)
		resp.Path = ferr.Path
		resp.Message = ferr.Message
	}
	s.writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func kindToken(kind error) string {
	switch {
	case errors.Is(kind, document.ErrSyntax):
		return "syntax"
	case errors.Is(kind, document.ErrUnsupportedVersion):
		return "unsupported_version"
	case errors.Is(kind, document.ErrSchema):
		return "schema"
	default:
		return "invalid"
	}
}

func mapActions(actions []document.Action) []actionPayload {
	out := make([]actionPayload, len(actions))
	for i, a := range actions {
		out[i] = actionPayload{
			Type:        a.Type,
			Description: browser.ActionDescription(a),
			Destination: deref(a.Destination),
			Key:         deref(a.Key),
			MediaID:     deref(a.MediaID),
			Command:     deref(a.Command),
			FormID:      deref(a.FormID),
			SearchQuery: deref(a.SearchQuery),
			ThemeName:   deref(a.ThemeName),
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
