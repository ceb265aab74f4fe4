package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/novabrowser/nova/internal/theme"
	"github.com/novabrowser/nova/pkg/document"
	"github.com/novabrowser/nova/pkg/ports"
)

// Prompter is re-exported so engine callers inside the module can name
// it without importing ports.
type Prompter = ports.Prompter

type silentPrompter struct{}

func (silentPrompter) Prompt(string) (string, error) {
	return "", errors.New("interactive input is not available")
}

func (silentPrompter) Notify(string) {}

// Dispatch executes one action from the catalog. Unknown or
// incomplete actions produce a notice rather than an error; the
// returned error is reserved for real failures (store writes, loads
// the caller should know about, prompting on a non-interactive host).
func (e *Engine) Dispatch(ctx context.Context, action document.Action, p Prompter) error {
	if p == nil {
		p = silentPrompter{}
	}

	switch action.Type {
	case document.ActionNavigate:
		dest := deref(action.Destination)
		if dest == "" {
			p.Notify("⚠️ Navigation target missing")
			return nil
		}
		_, err := e.Load(ctx, dest)
		return err

	case document.ActionStore:
		return e.dispatchStore(ctx, action, p)

	case document.ActionMediaControl:
		p.Notify(fmt.Sprintf("🎵 Media %s: %s", deref(action.MediaID), deref(action.Command)))
		return nil

	case document.ActionSearch:
		return e.dispatchSearch(ctx, action, p)

	case document.ActionSetTheme:
		return e.dispatchSetTheme(action, p)

	case document.ActionShowStats:
		e.notifyStats(ctx, p)
		return nil

	case document.ActionShowPermissions:
		e.notifyPermissions(p)
		return nil

	case document.ActionShowHistory:
		return e.notifyHistory(ctx, p)

	case document.ActionClearCache:
		if e.cache == nil {
			p.Notify("⚠️ Cache is not configured")
			return nil
		}
		if err := e.cache.Purge(ctx); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		p.Notify("🗑️ Cache cleared")
		return nil

	case document.ActionFormSubmit:
		return e.dispatchFormSubmit(ctx, action, p)

	default:
		p.Notify(fmt.Sprintf("⚠️ Action not implemented: %s", action.Type))
		return nil
	}
}

func (e *Engine) dispatchStore(ctx context.Context, action document.Action, p Prompter) error {
	key := deref(action.Key)
	if key == "" {
		p.Notify("⚠️ Store action missing key")
		return nil
	}
	if e.kv == nil {
		p.Notify("⚠️ Storage is not configured")
		return nil
	}
	if err := e.kv.Set(ctx, key, action.Value); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	p.Notify(fmt.Sprintf("💾 Stored %s", key))
	return nil
}

func (e *Engine) dispatchSearch(ctx context.Context, action document.Action, p Prompter) error {
	query := deref(action.SearchQuery)
	if query == "" {
		answer, err := p.Prompt("Enter search query:")
		if err != nil {
			return err
		}
		query = strings.TrimSpace(answer)
	}
	if query == "" {
		return nil
	}
	_, err := e.Load(ctx, e.searchURL+url.QueryEscape(query))
	return err
}

func (e *Engine) dispatchSetTheme(action document.Action, p Prompter) error {
	name := deref(action.ThemeName)
	if name == "" {
		answer, err := p.Prompt(fmt.Sprintf("Theme (%s):", strings.Join(theme.Names(), ", ")))
		if err != nil {
			return err
		}
		name = strings.TrimSpace(answer)
	}
	if name == "" {
		return nil
	}
	if err := e.SetTheme(name); err != nil {
		p.Notify(fmt.Sprintf("⚠️ %v", err))
		return nil
	}
	p.Notify(fmt.Sprintf("🎨 Theme set to %s", name))
	return nil
}

func (e *Engine) notifyStats(ctx context.Context, p Prompter) {
	stats := e.Stats(ctx)
	active := stats.ActiveTitle
	if active == "" {
		active = "None"
	}
	p.Notify("📊 BROWSER STATUS")
	p.Notify(fmt.Sprintf("Open tabs: %d", stats.Tabs))
	p.Notify(fmt.Sprintf("Cache entries: %d", stats.CacheEntries))
	p.Notify(fmt.Sprintf("History entries: %d", stats.HistoryEntries))
	p.Notify(fmt.Sprintf("Bookmarks: %d", stats.Bookmarks))
	p.Notify(fmt.Sprintf("Active tab: %s", active))
}

func (e *Engine) notifyPermissions(p Prompter) {
	tab := e.ActiveTab()
	if tab == nil || len(tab.Permissions) == 0 {
		p.Notify("🔒 No permissions requested by this page")
		return
	}
	p.Notify(fmt.Sprintf("🔒 Page requests: %s", strings.Join(tab.Permissions, ", ")))
}

func (e *Engine) notifyHistory(ctx context.Context, p Prompter) error {
	if e.history == nil {
		p.Notify("⚠️ History is not configured")
		return nil
	}
	visits, err := e.history.Recent(ctx, 10)
	if err != nil {
		return fmt.Errorf("show history: %w", err)
	}
	if len(visits) == 0 {
		p.Notify("📜 History is empty")
		return nil
	}
	p.Notify("📜 Recent history:")
	// Most recent first.
	for i := len(visits) - 1; i >= 0; i-- {
		p.Notify(fmt.Sprintf("  %d. %s (%s)", len(visits)-i, visits[i].Title, visits[i].URL))
	}
	return nil
}

func (e *Engine) dispatchFormSubmit(ctx context.Context, action document.Action, p Prompter) error {
	formID := deref(action.FormID)
	if formID == "" {
		p.Notify("⚠️ Form submit missing form id")
		return nil
	}
	tab := e.ActiveTab()
	if tab == nil || tab.Document == nil || tab.Document.Layout == nil {
		p.Notify("⚠️ No document to submit")
		return nil
	}
	form := findForm(tab.Document.Layout, formID)
	if form == nil {
		p.Notify(fmt.Sprintf("⚠️ Form not found: %s", formID))
		return nil
	}

	filled := 0
	for _, input := range collectInputs(form) {
		label := deref(input.Placeholder)
		if label == "" {
			label = deref(input.ID)
		}
		value, err := p.Prompt(label + ":")
		if err != nil {
			return err
		}
		e.SetFormValue(deref(input.ID), value)
		filled++
	}
	if e.kv != nil {
		if err := e.kv.Set(ctx, "form:"+formID, e.formSnapshot(form)); err != nil {
			return fmt.Errorf("submit form %s: %w", formID, err)
		}
	}
	p.Notify(fmt.Sprintf("📝 Form %s submitted (%d fields)", formID, filled))
	return nil
}

// PromptLabels returns the labels Dispatch will request for action, in
// order. Frontends that cannot block mid-dispatch collect answers for
// exactly these labels up front and feed them through a queued Prompter.
func (e *Engine) PromptLabels(action document.Action) []string {
	switch action.Type {
	case document.ActionSearch:
		if deref(action.SearchQuery) == "" {
			return []string{"Enter search query:"}
		}
	case document.ActionSetTheme:
		if deref(action.ThemeName) == "" {
			return []string{fmt.Sprintf("Theme (%s):", strings.Join(theme.Names(), ", "))}
		}
	case document.ActionFormSubmit:
		formID := deref(action.FormID)
		tab := e.ActiveTab()
		if formID == "" || tab == nil || tab.Document == nil || tab.Document.Layout == nil {
			return nil
		}
		form := findForm(tab.Document.Layout, formID)
		if form == nil {
			return nil
		}
		var labels []string
		for _, input := range collectInputs(form) {
			label := deref(input.Placeholder)
			if label == "" {
				label = deref(input.ID)
			}
			labels = append(labels, label+":")
		}
		return labels
	}
	return nil
}

// formSnapshot maps the form's input ids to their captured values.
func (e *Engine) formSnapshot(form *document.LayoutNode) map[string]string {
	snapshot := make(map[string]string)
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, input := range collectInputs(form) {
		id := deref(input.ID)
		snapshot[id] = e.formData[id]
	}
	return snapshot
}

func findForm(node *document.LayoutNode, id string) *document.LayoutNode {
	if node == nil {
		return nil
	}
	if node.Type == document.NodeTypeForm && deref(node.ID) == id {
		return node
	}
	for i := range node.Children {
		if found := findForm(&node.Children[i], id); found != nil {
			return found
		}
	}
	return nil
}

// collectInputs gathers the input descendants of a form that carry an
// id, in document order.
func collectInputs(form *document.LayoutNode) []*document.LayoutNode {
	var inputs []*document.LayoutNode
	var walk func(node *document.LayoutNode)
	walk = func(node *document.LayoutNode) {
		if node.Type == document.NodeTypeInput && deref(node.ID) != "" {
			inputs = append(inputs, node)
		}
		for i := range node.Children {
			walk(&node.Children[i])
		}
	}
	for i := range form.Children {
		walk(&form.Children[i])
	}
	return inputs
}

// ActionIcon returns the menu icon for an action type.
func ActionIcon(actionType string) string {
	if icon, ok := actionIcons[actionType]; ok {
		return icon
	}
	return "⚡"
}

var actionIcons = map[string]string{
	document.ActionNavigate:        "🌐",
	document.ActionStore:           "💾",
	document.ActionMediaControl:    "🎵",
	document.ActionSearch:          "🔍",
	document.ActionSetTheme:        "🎨",
	document.ActionShowStats:       "📊",
	document.ActionShowPermissions: "🔒",
	document.ActionShowHistory:     "📜",
	document.ActionClearCache:      "🗑️",
	document.ActionFormSubmit:      "📝",
}

// ActionDescription returns the menu line for an action.
func ActionDescription(action document.Action) string {
	switch action.Type {
	case document.ActionNavigate:
		proto := "📁"
		dest := deref(action.Destination)
		if strings.HasPrefix(dest, "http") {
			proto = "🌐"
		}
		if dest == "" {
			dest = "unknown"
		}
		return fmt.Sprintf("%s Navigate to %s", proto, dest)
	case document.ActionStore:
		return fmt.Sprintf("💾 Store data: %s", deref(action.Key))
	case document.ActionSearch:
		query := deref(action.SearchQuery)
		if query == "" {
			query = "Enter query"
		}
		return fmt.Sprintf("🔍 Search: %s", query)
	case document.ActionShowStats:
		return "📊 Show browser statistics"
	default:
		return titleCase(action.Type)
	}
}

// titleCase turns an action type like media_control into Media Control.
func titleCase(actionType string) string {
	words := strings.Fields(strings.ReplaceAll(actionType, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
