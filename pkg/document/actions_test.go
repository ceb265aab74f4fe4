package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novabrowser/nova/pkg/document"
)

func parseLayout(t *testing.T, layout string) *document.LayoutNode {
	t.Helper()
	doc, err := document.ParseString(`{"version":"1.0","layout":` + layout + `}`)
	require.NoError(t, err)
	return doc.Layout
}

func actionTypes(actions []document.Action) []string {
	types := make([]string, len(actions))
	for i, a := range actions {
		types[i] = a.Type
	}
	return types
}

func TestCollectActionsDeterminism(t *testing.T) {
	root := parseLayout(t, `{
		"type": "column",
		"children": [
			{"type": "form", "id": "f1", "children": [
				{"type": "input", "id": "name"},
				{"type": "button", "text": "Send", "action": {"type": "form_submit", "form_id": "f1"}}
			]},
			{"type": "audio", "id": "song", "source": "s.mp3"},
			{"type": "link", "text": "Docs", "destination": "https://example.com"}
		]
	}`)

	first := document.CollectActions(root)
	second := document.CollectActions(root)
	require.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestCollectActionsLinkWithExplicitAction(t *testing.T) {
	root := parseLayout(t, `{
		"type": "link",
		"text": "Special",
		"destination": "nova://here",
		"action": {"type": "set_theme", "theme_name": "dark"}
	}`)

	actions := document.CollectActions(root)
	require.Len(t, actions, 2)
	assert.Equal(t, document.ActionSetTheme, actions[0].Type)
	assert.Equal(t, document.ActionNavigate, actions[1].Type)
	require.NotNil(t, actions[1].Destination)
	assert.Equal(t, "nova://here", *actions[1].Destination)
}

// A form's synthesized submit is emitted when the form node itself is
// visited, before descending into children: step 2 of the per-node order
// precedes step 5.
func TestCollectActionsFormSubmitPrecedesChildren(t *testing.T) {
	root := parseLayout(t, `{
		"type": "form",
		"id": "f1",
		"children": [
			{"type": "button", "text": "A"},
			{"type": "button", "text": "B", "action": {"type": "store", "key": "b"}}
		]
	}`)

	actions := document.CollectActions(root)
	require.Len(t, actions, 2)
	assert.Equal(t, document.ActionFormSubmit, actions[0].Type)
	require.NotNil(t, actions[0].FormID)
	assert.Equal(t, "f1", *actions[0].FormID)
	assert.Equal(t, document.ActionStore, actions[1].Type)
}

func TestCollectActionsFormWithoutID(t *testing.T) {
	root := parseLayout(t, `{"type": "form", "children": [{"type": "text", "text": "x"}]}`)
	assert.Empty(t, document.CollectActions(root))
}

func TestCollectActionsMediaTransport(t *testing.T) {
	t.Run("controls absent defaults to present", func(t *testing.T) {
		root := parseLayout(t, `{"type": "audio", "id": "a1", "source": "a.mp3"}`)
		actions := document.CollectActions(root)
		require.Len(t, actions, 3)
		for i, cmd := range []string{"play", "pause", "stop"} {
			assert.Equal(t, document.ActionMediaControl, actions[i].Type)
			require.NotNil(t, actions[i].MediaID)
			assert.Equal(t, "a1", *actions[i].MediaID)
			require.NotNil(t, actions[i].Command)
			assert.Equal(t, cmd, *actions[i].Command)
		}
	})

	t.Run("controls true", func(t *testing.T) {
		root := parseLayout(t, `{"type": "video", "id": "v1", "controls": true}`)
		assert.Len(t, document.CollectActions(root), 3)
	})

	t.Run("controls false suppresses transport", func(t *testing.T) {
		root := parseLayout(t, `{"type": "video", "id": "v1", "controls": false}`)
		assert.Empty(t, document.CollectActions(root))
	})

	t.Run("no id suppresses transport", func(t *testing.T) {
		root := parseLayout(t, `{"type": "audio", "source": "a.mp3"}`)
		assert.Empty(t, document.CollectActions(root))
	})

	t.Run("images never synthesize transport", func(t *testing.T) {
		root := parseLayout(t, `{"type": "image", "id": "i1", "source": "i.png"}`)
		assert.Empty(t, document.CollectActions(root))
	})
}

func TestCollectActionsLinkEdgeCases(t *testing.T) {
	t.Run("no destination", func(t *testing.T) {
		root := parseLayout(t, `{"type": "link", "text": "dead"}`)
		assert.Empty(t, document.CollectActions(root))
	})

	t.Run("empty destination targets nothing", func(t *testing.T) {
		root := parseLayout(t, `{"type": "link", "text": "dead", "destination": ""}`)
		assert.Empty(t, document.CollectActions(root))
	})
}

func TestCollectActionsPreOrderAcrossTree(t *testing.T) {
	root := parseLayout(t, `{
		"type": "column",
		"children": [
			{"type": "button", "text": "first", "action": {"type": "show_stats"}},
			{"type": "form", "id": "f1", "children": [
				{"type": "link", "text": "inner", "destination": "nova://inner"}
			]},
			{"type": "video", "id": "v1"},
			{"type": "link", "text": "last", "destination": "nova://last",
			 "action": {"type": "clear_cache"}}
		]
	}`)

	got := actionTypes(document.CollectActions(root))
	want := []string{
		document.ActionShowStats,
		document.ActionFormSubmit,
		document.ActionNavigate, // inner link, reached by descending into the form
		document.ActionMediaControl,
		document.ActionMediaControl,
		document.ActionMediaControl,
		document.ActionClearCache, // explicit action precedes the synthesized navigate
		document.ActionNavigate,
	}
	assert.Equal(t, want, got)
}

func TestCollectActionsUnknownTypePreserved(t *testing.T) {
	root := parseLayout(t, `{
		"type": "button",
		"action": {"type": "frobnicate", "extension_id": "x9"}
	}`)

	actions := document.CollectActions(root)
	require.Len(t, actions, 1)
	assert.Equal(t, "frobnicate", actions[0].Type)
	require.NotNil(t, actions[0].ExtensionID)
}

func TestCollectActionsNilRoot(t *testing.T) {
	assert.Empty(t, document.CollectActions(nil))
}
