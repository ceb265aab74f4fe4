package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novabrowser/nova"
	"github.com/novabrowser/nova/pkg/ports"
)

type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, ok := f[url]
	if !ok {
		return "", &ports.NetworkError{URL: url, Status: 404}
	}
	return body, nil
}

const sampleDocument = `{
	"version": "1.0",
	"metadata": {"title": "Release Notes"},
	"layout": {"type": "column", "children": [
		{"type": "heading", "level": 2, "text": "Release Notes"},
		{"type": "button", "id": "go", "text": "Go",
		 "action": {"type": "navigate", "destination": "file:///next.nova"}},
		{"type": "button", "id": "find", "text": "Find",
		 "action": {"type": "search"}}
	]}
}`

func newTestServer(t *testing.T, pages fakeFetcher) *Server {
	t.Helper()
	b, err := nova.New(nova.WithFetcher(pages))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return NewServer(b)
}

func args(kv ...string) map[string]interface{} {
	m := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func TestFetchDocumentTool(t *testing.T) {
	s := newTestServer(t, fakeFetcher{"https://example.com/doc": sampleDocument})

	resp, err := s.handleFetchDocument(context.Background(), mcp.CallToolRequest{},
		args("url", "https://example.com/doc"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/doc", resp.URL)
	assert.Equal(t, sampleDocument, resp.Body)
}

func TestFetchDocumentToolRequiresURL(t *testing.T) {
	s := newTestServer(t, fakeFetcher{})
	_, err := s.handleFetchDocument(context.Background(), mcp.CallToolRequest{}, args())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url is required")
}

func TestFetchDocumentToolReportsUpstreamFailure(t *testing.T) {
	s := newTestServer(t, fakeFetcher{})
	_, err := s.handleFetchDocument(context.Background(), mcp.CallToolRequest{},
		args("url", "https://example.com/missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestRenderDocumentTool(t *testing.T) {
	s := newTestServer(t, fakeFetcher{})

	resp, err := s.handleRenderDocument(context.Background(), mcp.CallToolRequest{},
		args("document", sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "Release Notes", resp.Title)
	assert.Contains(t, resp.Text, "## Release Notes")
	require.Len(t, resp.Actions, 2)
	assert.Equal(t, 1, resp.Actions[0].Index)
	assert.Equal(t, "navigate", resp.Actions[0].Type)
	assert.Equal(t, "file:///next.nova", resp.Actions[0].Destination)
	assert.Equal(t, "📁 Navigate to file:///next.nova", resp.Actions[0].Description)
	assert.Equal(t, 2, resp.Actions[1].Index)
	assert.Equal(t, "search", resp.Actions[1].Type)
	assert.Empty(t, resp.Actions[1].Destination)
}

func TestRenderDocumentToolFetchesURL(t *testing.T) {
	s := newTestServer(t, fakeFetcher{"https://example.com/doc": sampleDocument})

	resp, err := s.handleRenderDocument(context.Background(), mcp.CallToolRequest{},
		args("url", "https://example.com/doc"))
	require.NoError(t, err)
	assert.Equal(t, "Release Notes", resp.Title)
}

func TestRenderDocumentToolRejectsMalformed(t *testing.T) {
	s := newTestServer(t, fakeFetcher{})
	_, err := s.handleRenderDocument(context.Background(), mcp.CallToolRequest{},
		args("document", "{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse failed")
}

func TestListActionsTool(t *testing.T) {
	s := newTestServer(t, fakeFetcher{})

	resp, err := s.handleListActions(context.Background(), mcp.CallToolRequest{},
		args("document", sampleDocument))
	require.NoError(t, err)
	require.Len(t, resp.Actions, 2)
	assert.Equal(t, "navigate", resp.Actions[0].Type)
	assert.Equal(t, "search", resp.Actions[1].Type)
}

func TestResolveBodyRequiresDocumentOrURL(t *testing.T) {
	s := newTestServer(t, fakeFetcher{})
	_, err := s.handleListActions(context.Background(), mcp.CallToolRequest{}, args())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `either "document" or "url" is required`)
}

func TestInlineDocumentSizeCap(t *testing.T) {
	s := newTestServer(t, fakeFetcher{})
	oversized := strings.Repeat("a", maxDocumentBytes+1)
	_, err := s.handleRenderDocument(context.Background(), mcp.CallToolRequest{},
		args("document", oversized))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestWelcomeResource(t *testing.T) {
	s := newTestServer(t, fakeFetcher{})

	contents, err := s.handleWelcomeResource(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "nova://welcome", text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	doc, err := s.browser.Parse(text.Text)
	require.NoError(t, err)
	assert.Equal(t, "Nova Browser - Production Ready", doc.Title(""))
}
