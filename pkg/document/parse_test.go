package document_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novabrowser/nova/pkg/document"
)

func TestParseMinimalDocument(t *testing.T) {
	doc, err := document.ParseString(`{"version":"1.0","layout":{"type":"text","text":"hi"}}`)
	require.NoError(t, err)

	require.NotNil(t, doc.Layout)
	assert.Equal(t, document.Version, doc.Version)
	assert.Equal(t, "text", doc.Layout.Type)
	require.NotNil(t, doc.Layout.Text)
	assert.Equal(t, "hi", *doc.Layout.Text)
	assert.Equal(t, `{"version":"1.0","layout":{"type":"text","text":"hi"}}`, doc.RawContent)
	assert.Greater(t, doc.Metrics.ParseDuration.Nanoseconds(), int64(0))
}

func TestParseSyntaxError(t *testing.T) {
	_, err := document.ParseString(`{"version":`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrSyntax))

	var formatErr *document.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.NotNil(t, formatErr.Err)
}

func TestParseTopLevelMustBeObject(t *testing.T) {
	for _, text := range []string{`[]`, `"doc"`, `42`, `null`} {
		_, err := document.ParseString(text)
		require.Error(t, err, "input %s", text)
		assert.True(t, errors.Is(err, document.ErrSchema), "input %s", text)
	}
}

func TestParseUnsupportedVersion(t *testing.T) {
	t.Run("wrong literal", func(t *testing.T) {
		_, err := document.ParseString(`{"version":"2.0","layout":{"type":"text"}}`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, document.ErrUnsupportedVersion))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := document.ParseString(`{"layout":{"type":"text"}}`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, document.ErrUnsupportedVersion))
	})

	t.Run("non-string", func(t *testing.T) {
		_, err := document.ParseString(`{"version":1.0,"layout":{"type":"text"}}`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, document.ErrUnsupportedVersion))
	})
}

func TestParseMissingLayout(t *testing.T) {
	_, err := document.ParseString(`{"version":"1.0"}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrSchema))

	var formatErr *document.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "missing layout", formatErr.Message)
}

func TestParseNodeMissingType(t *testing.T) {
	_, err := document.ParseString(`{"version":"1.0","layout":{"text":"hi"}}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrSchema))

	var formatErr *document.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "layout", formatErr.Path)
}

func TestParseSchemaErrorPaths(t *testing.T) {
	tests := []struct {
		name string
		text string
		path string
	}{
		{
			name: "nested child missing type",
			text: `{"version":"1.0","layout":{"type":"column","children":[{"type":"text"},{"text":"x"}]}}`,
			path: "layout.children[1]",
		},
		{
			name: "child not an object",
			text: `{"version":"1.0","layout":{"type":"column","children":[42]}}`,
			path: "layout.children[0]",
		},
		{
			name: "action not an object",
			text: `{"version":"1.0","layout":{"type":"button","action":"navigate"}}`,
			path: "layout",
		},
		{
			name: "children not an array",
			text: `{"version":"1.0","layout":{"type":"form","children":{"type":"text"}}}`,
			path: "layout",
		},
		{
			name: "deep nesting",
			text: `{"version":"1.0","layout":{"type":"grid","children":[{"type":"column","children":[{"type":"row","children":[null]}]}]}}`,
			path: "layout.children[0].children[0].children[0]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := document.ParseString(tc.text)
			require.Error(t, err)
			require.True(t, errors.Is(err, document.ErrSchema))

			var formatErr *document.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tc.path, formatErr.Path)
		})
	}
}

func TestParsePermissiveOptionalFields(t *testing.T) {
	doc, err := document.ParseString(`{
		"version": "1.0",
		"layout": {
			"type": "text",
			"text": 42,
			"level": 2.5,
			"custom_field": {"nested": true}
		}
	}`)
	require.NoError(t, err)

	node := doc.Layout
	assert.Nil(t, node.Text, "wrong-typed text must not populate the field")
	assert.Nil(t, node.Level)
	assert.Equal(t, float64(42), node.Extra["text"])
	assert.Equal(t, 2.5, node.Extra["level"])
	assert.Equal(t, map[string]any{"nested": true}, node.Extra["custom_field"])
}

func TestParseWholeNumbersBecomeInts(t *testing.T) {
	doc, err := document.ParseString(`{
		"version": "1.0",
		"layout": {"type": "image", "source": "a.png", "width": 640, "height": 480.0}
	}`)
	require.NoError(t, err)

	require.NotNil(t, doc.Layout.Width)
	require.NotNil(t, doc.Layout.Height)
	assert.Equal(t, 640, *doc.Layout.Width)
	assert.Equal(t, 480, *doc.Layout.Height)
}

func TestParseChildrenAbsentVersusEmpty(t *testing.T) {
	absent, err := document.ParseString(`{"version":"1.0","layout":{"type":"column"}}`)
	require.NoError(t, err)
	assert.Nil(t, absent.Layout.Children)

	empty, err := document.ParseString(`{"version":"1.0","layout":{"type":"column","children":[]}}`)
	require.NoError(t, err)
	require.NotNil(t, empty.Layout.Children)
	assert.Len(t, empty.Layout.Children, 0)
}

func TestParseActionPayload(t *testing.T) {
	doc, err := document.ParseString(`{
		"version": "1.0",
		"layout": {
			"type": "button",
			"text": "Save",
			"action": {"type": "store", "key": "draft", "value": {"words": 12}}
		}
	}`)
	require.NoError(t, err)

	action := doc.Layout.Action
	require.NotNil(t, action)
	assert.Equal(t, document.ActionStore, action.Type)
	require.NotNil(t, action.Key)
	assert.Equal(t, "draft", *action.Key)
	assert.Equal(t, map[string]any{"words": float64(12)}, action.Value)
}

func TestParseActionWithoutType(t *testing.T) {
	doc, err := document.ParseString(`{
		"version": "1.0",
		"layout": {"type": "button", "action": {"destination": "nova://x"}}
	}`)
	require.NoError(t, err)

	require.NotNil(t, doc.Layout.Action)
	assert.Equal(t, "", doc.Layout.Action.Type)
	require.NotNil(t, doc.Layout.Action.Destination)
}

func TestParseTableData(t *testing.T) {
	t.Run("well-typed", func(t *testing.T) {
		doc, err := document.ParseString(`{
			"version": "1.0",
			"layout": {"type": "table", "table_data": [["h1","h2"],["a","b"]]}
		}`)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"h1", "h2"}, {"a", "b"}}, doc.Layout.TableData)
	})

	t.Run("mixed cells pass through", func(t *testing.T) {
		doc, err := document.ParseString(`{
			"version": "1.0",
			"layout": {"type": "table", "table_data": [["a", 1]]}
		}`)
		require.NoError(t, err)
		assert.Nil(t, doc.Layout.TableData)
		assert.Contains(t, doc.Layout.Extra, "table_data")
	})
}

func TestParseDocumentPassthroughs(t *testing.T) {
	doc, err := document.ParseString(`{
		"version": "1.0",
		"layout": {"type": "text"},
		"requires": ["storage", "forms"],
		"metadata": {"title": "Home", "description": "demo"},
		"csp": "default-src 'self'",
		"manifest": {"name": "app"},
		"service_worker": "sw.js",
		"x_vendor": [1, 2]
	}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"storage", "forms"}, doc.Requires)
	assert.Equal(t, "Home", doc.Metadata["title"])
	require.NotNil(t, doc.CSP)
	assert.Equal(t, "default-src 'self'", *doc.CSP)
	assert.Equal(t, "app", doc.Manifest["name"])
	require.NotNil(t, doc.ServiceWorker)
	assert.Equal(t, "sw.js", *doc.ServiceWorker)
	assert.Equal(t, []any{float64(1), float64(2)}, doc.Extra["x_vendor"])

	assert.Equal(t, "Home", doc.Title("fallback"))
}

func TestParseMistypedDocumentFieldPassesThrough(t *testing.T) {
	doc, err := document.ParseString(`{
		"version": "1.0",
		"layout": {"type": "text"},
		"requires": "storage"
	}`)
	require.NoError(t, err)
	assert.Nil(t, doc.Requires)
	assert.Equal(t, "storage", doc.Extra["requires"])
}

func TestTitleFallsBackToURL(t *testing.T) {
	doc, err := document.ParseString(`{"version":"1.0","layout":{"type":"text"},"metadata":{"title":7}}`)
	require.NoError(t, err)
	assert.Equal(t, "nova://x", doc.Title("nova://x"))
}
