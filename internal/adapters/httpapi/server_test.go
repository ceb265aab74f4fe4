package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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
		{"type": "text", "text": "All fixes shipped."},
		{"type": "button", "id": "go", "text": "Go",
		 "action": {"type": "navigate", "destination": "file:///next.nova"}}
	]}
}`

func newTestHandler(t *testing.T, pages fakeFetcher) http.Handler {
	t.Helper()
	b, err := nova.New(nova.WithFetcher(pages))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return NewHandler(b, WithRegistry(b.Metrics().Registry()))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	rr := do(t, h, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRenderDocument(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	rr := do(t, h, http.MethodPost, "/v1/render", sampleDocument)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp renderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "Release Notes", resp.Title)
	assert.Contains(t, resp.Text, "## Release Notes")
	assert.Contains(t, resp.Text, "All fixes shipped.")
	require.Len(t, resp.Actions, 1)
	assert.Equal(t, "navigate", resp.Actions[0].Type)
	assert.Equal(t, "file:///next.nova", resp.Actions[0].Destination)
	assert.Equal(t, "📁 Navigate to file:///next.nova", resp.Actions[0].Description)
}

func TestRenderRejectsMalformedJSON(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	rr := do(t, h, http.MethodPost, "/v1/render", "{not json")

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp validateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "syntax", resp.Kind)
}

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	rr := do(t, h, http.MethodPost, "/v1/validate", sampleDocument)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp validateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Kind)
}

func TestValidateReportsSchemaViolationWithPath(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	rr := do(t, h, http.MethodPost, "/v1/validate", `{"version": "1.0", "layout": {"type": 7}}`)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp validateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "schema", resp.Kind)
	assert.Equal(t, "layout", resp.Path)
	assert.Equal(t, `layout node must have a string "type"`, resp.Message)
}

func TestValidateReportsUnsupportedVersion(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	rr := do(t, h, http.MethodPost, "/v1/validate", `{"version": "2.0", "layout": {"type": "text"}}`)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp validateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "unsupported_version", resp.Kind)
}

func TestRenderRejectsOversizeBody(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	oversized := fmt.Sprintf(`{"version": "1.0", "layout": {"type": "text", "text": %q}}`,
		strings.Repeat("a", maxDocumentBytes))
	rr := do(t, h, http.MethodPost, "/v1/render", oversized)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestFetchProxiesThroughClient(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{"https://example.com/doc": sampleDocument})

	rr := do(t, h, http.MethodGet, "/v1/fetch?url=https%3A%2F%2Fexample.com%2Fdoc", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp fetchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "https://example.com/doc", resp.URL)
	assert.JSONEq(t, sampleDocument, resp.Body)
}

func TestFetchReportsUpstreamFailure(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	rr := do(t, h, http.MethodGet, "/v1/fetch?url=https%3A%2F%2Fexample.com%2Fmissing", "")

	require.Equal(t, http.StatusBadGateway, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "unexpected status 404")
}

func TestFetchRequiresURLParameter(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	rr := do(t, h, http.MethodGet, "/v1/fetch", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsEndpointExposesRegistry(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})

	// One render to move the parse histogram.
	do(t, h, http.MethodPost, "/v1/render", sampleDocument)

	rr := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "nova_document_parse_seconds")
}

func TestCORSPreflightAllowed(t *testing.T) {
	h := newTestHandler(t, fakeFetcher{})
	rr := do(t, h, http.MethodOptions, "/v1/render", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
