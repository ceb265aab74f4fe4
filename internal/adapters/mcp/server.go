// Package mcp exposes the document pipeline to MCP clients. Tools cover
// fetching, rendering and action inspection; the builtin welcome page is
// published as a resource so clients can discover the document format.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/novabrowser/nova"
	"github.com/novabrowser/nova/internal/adapters/library"
	"github.com/novabrowser/nova/internal/browser"
	"github.com/novabrowser/nova/internal/logging"
	"github.com/novabrowser/nova/pkg/document"
)

// maxDocumentBytes bounds inline document arguments, matching the HTTP
// API's request body cap.
const maxDocumentBytes = 1 << 20

// FetchResponse carries a fetched document body back to the client.
type FetchResponse struct {
	URL  string `json:"url" jsonschema_description:"The URL the body was fetched from"`
	Body string `json:"body" jsonschema_description:"The raw document body"`
}

// RenderResponse is the rendered form of a document plus its action catalog.
type RenderResponse struct {
	Title   string       `json:"title" jsonschema_description:"Document title"`
	Text    string       `json:"text" jsonschema_description:"Rendered plain-text output"`
	Actions []ActionInfo `json:"actions" jsonschema_description:"Interactive actions in catalog order"`
}

// ActionsResponse lists the action catalog of a document.
type ActionsResponse struct {
	Actions []ActionInfo `json:"actions" jsonschema_description:"Interactive actions in catalog order"`
}

// ActionInfo describes one catalog entry.
type ActionInfo struct {
	Index       int    `json:"index" jsonschema_description:"One-based position in the catalog"`
	Type        string `json:"type" jsonschema_description:"Action type"`
	Description string `json:"description" jsonschema_description:"Human-readable description"`
	Destination string `json:"destination,omitempty" jsonschema_description:"Navigation target, when the action navigates"`
}

// Browser is the slice of the engine the MCP server needs. The root
// nova.Browser satisfies it.
type Browser interface {
	Parse(body string) (*document.Document, error)
	RenderToString(doc *document.Document) string
	Actions(doc *document.Document) []document.Action
	Fetch(ctx context.Context, url string) (string, error)
}

// Server exposes a Browser as an MCP server.
type Server struct {
	browser   Browser
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for transport diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server over the given browser.
func NewServer(b Browser, opts ...Option) *Server {
	s := &Server{
		browser:   b,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("nova", nova.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio serves the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP protocol over SSE on addr. baseURL is the URL
// advertised to clients; when empty it is derived from addr.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	if baseURL == "" {
		if strings.HasPrefix(addr, ":") {
			baseURL = "http://localhost" + addr
		} else {
			baseURL = "http://" + addr
		}
	}

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening (sse)", "addr", addr, "base_url", baseURL)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	fetchTool := mcp.NewTool("fetch_document",
		mcp.WithDescription("Fetch a document body from a URL through the caching network client."),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL to fetch")),
		mcp.WithOutputSchema[FetchResponse](),
	)
	s.mcpServer.AddTool(fetchTool, mcp.NewStructuredToolHandler(s.handleFetchDocument))

	renderTool := mcp.NewTool("render_document",
		mcp.WithDescription("Parse and render a document to plain text with its action catalog."),
		mcp.WithString("document", mcp.Description("Raw document JSON (optional if url is provided)")),
		mcp.WithString("url", mcp.Description("URL to fetch the document from (optional if document is provided)")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRenderDocument))

	actionsTool := mcp.NewTool("list_actions",
		mcp.WithDescription("List the interactive actions a document declares, in render order."),
		mcp.WithString("document", mcp.Description("Raw document JSON (optional if url is provided)")),
		mcp.WithString("url", mcp.Description("URL to fetch the document from (optional if document is provided)")),
		mcp.WithOutputSchema[ActionsResponse](),
	)
	s.mcpServer.AddTool(actionsTool, mcp.NewStructuredToolHandler(s.handleListActions))
}

func (s *Server) handleFetchDocument(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FetchResponse, error) {
	url, _ := args["url"].(string)
	if url == "" {
		return FetchResponse{}, fmt.Errorf("url is required")
	}

	body, err := s.browser.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("mcp fetch failed", "url", url, "err", err)
		return FetchResponse{}, fmt.Errorf("fetch failed: %w", err)
	}
	return FetchResponse{URL: url, Body: body}, nil
}

func (s *Server) handleRenderDocument(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RenderResponse, error) {
	body, err := s.resolveBody(ctx, args)
	if err != nil {
		return RenderResponse{}, err
	}

	doc, err := s.browser.Parse(body)
	if err != nil {
		return RenderResponse{}, fmt.Errorf("parse failed: %w", err)
	}

	return RenderResponse{
		Title:   doc.Title(""),
		Text:    s.browser.RenderToString(doc),
		Actions: actionCatalog(s.browser.Actions(doc)),
	}, nil
}

func (s *Server) handleListActions(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ActionsResponse, error) {
	body, err := s.resolveBody(ctx, args)
	if err != nil {
		return ActionsResponse{}, err
	}

	doc, err := s.browser.Parse(body)
	if err != nil {
		return ActionsResponse{}, fmt.Errorf("parse failed: %w", err)
	}

	return ActionsResponse{Actions: actionCatalog(s.browser.Actions(doc))}, nil
}

// resolveBody extracts the document body from the inline "document"
// argument or, failing that, fetches the "url" argument.
func (s *Server) resolveBody(ctx context.Context, args map[string]interface{}) (string, error) {
	if body, ok := args["document"].(string); ok && body != "" {
		if len(body) > maxDocumentBytes {
			return "", fmt.Errorf("document rejected: %d bytes exceeds limit of %d", len(body), maxDocumentBytes)
		}
		return body, nil
	}

	if url, ok := args["url"].(string); ok && url != "" {
		body, err := s.browser.Fetch(ctx, url)
		if err != nil {
			return "", fmt.Errorf("fetch failed: %w", err)
		}
		return body, nil
	}

	return "", fmt.Errorf(`either "document" or "url" is required`)
}

func actionCatalog(actions []document.Action) []ActionInfo {
	infos := make([]ActionInfo, 0, len(actions))
	for i, action := range actions {
		info := ActionInfo{
			Index:       i + 1,
			Type:        action.Type,
			Description: browser.ActionDescription(action),
		}
		if action.Destination != nil {
			info.Destination = *action.Destination
		}
		infos = append(infos, info)
	}
	return infos
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("nova://welcome", "Welcome Document",
		mcp.WithMIMEType("application/json"),
	), s.handleWelcomeResource)
}

func (s *Server) handleWelcomeResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "nova://welcome",
			MIMEType: "application/json",
			Text:     library.Welcome(),
		},
	}, nil
}
