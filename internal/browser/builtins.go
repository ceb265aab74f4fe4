package browser

import (
	"encoding/json"

	"github.com/novabrowser/nova/internal/config"
)

// ErrorDocument synthesizes a renderable document describing a failed
// load. msg may contain arbitrary text; the document is built as a map
// and marshalled so quoting is always correct. reloadURL is wired to
// the Reload button so the user can retry.
func ErrorDocument(msg, reloadURL string) string {
	doc := map[string]any{
		"version": "1.0",
		"metadata": map[string]any{
			"title":       "Error Loading Page",
			"description": "The requested document could not be loaded",
		},
		"layout": map[string]any{
			"type": "column",
			"children": []any{
				map[string]any{
					"type":  "heading",
					"level": 1,
					"text":  "🚫 Page Load Error",
				},
				map[string]any{
					"type": "text",
					"text": msg,
				},
				map[string]any{
					"type":   "button",
					"text":   "🔄 Reload",
					"action": map[string]any{"type": "navigate", "destination": reloadURL},
				},
				map[string]any{
					"type":        "link",
					"text":        "🏠 Back to Home",
					"destination": config.DefaultHome,
				},
			},
		},
	}
	// A literal map of strings always marshals.
	raw, _ := json.Marshal(doc)
	return string(raw)
}

// NotFound synthesizes the error page for a missing local document.
func NotFound(key string) string {
	return ErrorDocument("Document not found: "+key, "file:///"+key)
}

// UnsupportedProtocol synthesizes the error page for a URL scheme the
// browser does not speak.
func UnsupportedProtocol(url string) string {
	return ErrorDocument("Unsupported protocol: "+url, url)
}
