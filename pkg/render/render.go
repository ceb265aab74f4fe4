package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/novabrowser/nova/pkg/document"
	"github.com/novabrowser/nova/pkg/ports"
)

// WrapWidth is the column budget for flowed paragraph text. A single word
// longer than the budget is emitted on its own line, unsplit.
const WrapWidth = 76

// bannerWidth is the interior width of the level-1 heading box.
const bannerWidth = 74

// Observer receives the wall-clock duration, in seconds, of completed
// document render passes. prometheus.Observer satisfies it.
type Observer interface {
	Observe(float64)
}

// NodeError reports a failure while drawing a single layout node. The walk
// catches it at the failing node's boundary, emits a marker line and moves on
// to the next sibling, so one bad node never blanks the page.
type NodeError struct {
	Kind string // node type being drawn
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s node: %v", e.Kind, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// Renderer walks a layout tree depth-first and draws it onto a Surface as
// plain text. It holds no per-document state; indentation is threaded through
// the walk explicitly, so a single Renderer may be shared across documents
// and goroutines.
type Renderer struct {
	width    int
	observer Observer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth overrides the paragraph wrap budget.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithObserver attaches a duration observer fed once per RenderDocument call.
func WithObserver(o Observer) Option {
	return func(r *Renderer) {
		r.observer = o
	}
}

// New creates a Renderer with the default wrap width.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: WrapWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderDocument clears the surface and draws the document's layout tree
// from indent zero.
func (r *Renderer) RenderDocument(doc *document.Document, s ports.Surface) {
	start := time.Now()
	s.Clear()
	if doc != nil && doc.Layout != nil {
		r.RenderNode(s, doc.Layout, 0)
	}
	if r.observer != nil {
		r.observer.Observe(time.Since(start).Seconds())
	}
}

// RenderToString draws the document into a fresh buffer and returns the
// joined lines, each terminated by a newline.
func (r *Renderer) RenderToString(doc *document.Document) string {
	var buf Buffer
	r.RenderDocument(doc, &buf)
	return buf.String()
}

// RenderNode draws one node and its subtree at the given indent. A failure
// inside the node is confined to it: the marker line replaces the node's
// output and rendering continues with the caller's next sibling.
func (r *Renderer) RenderNode(s ports.Surface, node *document.LayoutNode, indent int) {
	if err := r.renderNode(s, node, indent); err != nil {
		s.WriteLine(pad(indent) + "⚠ render error: " + err.Error())
	}
}

func (r *Renderer) renderNode(s ports.Surface, node *document.LayoutNode, indent int) (err error) {
	if node == nil {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = &NodeError{Kind: node.Type, Err: fmt.Errorf("%v", rec)}
		}
	}()

	switch node.Type {
	case document.NodeTypeHeading:
		r.heading(s, node, indent)
	case document.NodeTypeParagraph, document.NodeTypeText:
		r.paragraph(s, node, indent)
	case document.NodeTypeButton:
		r.button(s, node, indent)
	case document.NodeTypeLink:
		r.link(s, node, indent)
	case document.NodeTypeInput:
		r.input(s, node, indent)
	case document.NodeTypeForm:
		r.form(s, node, indent)
	case document.NodeTypeTable:
		r.table(s, node, indent)
	case document.NodeTypeCode:
		r.code(s, node, indent)
	case document.NodeTypeImage:
		r.image(s, node, indent)
	case document.NodeTypeAudio:
		r.audio(s, node, indent)
	case document.NodeTypeVideo:
		r.video(s, node, indent)
	case document.NodeTypeColumn:
		r.column(s, node, indent)
	case document.NodeTypeRow:
		r.row(s, node, indent)
	case document.NodeTypeGrid:
		r.grid(s, node, indent)
	default:
		// Unrecognized kinds degrade to their text, or to nothing.
		if node.Text != nil {
			s.WriteLine(pad(indent) + *node.Text)
		}
	}
	return nil
}

// heading draws level 1 as a full-width banner box and every other level as
// a hash prefix. The level is not clamped: level 0 yields zero hashes.
func (r *Renderer) heading(s ports.Surface, node *document.LayoutNode, indent int) {
	level := 1
	if node.Level != nil {
		level = *node.Level
	}
	text := deref(node.Text)
	in := pad(indent)

	if level == 1 {
		border := strings.Repeat("═", 78)
		s.WriteLine("")
		s.WriteLine(in + "╔" + border + "╗")
		s.WriteLine(in + "║ " + banner(text) + " ║")
		s.WriteLine(in + "╚" + border + "╝")
		return
	}

	prefix := ""
	if level > 0 {
		prefix = strings.Repeat("#", level)
	}
	s.WriteLine("")
	s.WriteLine(in + prefix + " " + text)
}

// banner centers text within the heading box interior. Text wider than the
// box is truncated with a trailing ellipsis so the borders stay aligned.
func banner(text string) string {
	runes := []rune(text)
	if len(runes) > bannerWidth {
		return string(runes[:bannerWidth-3]) + "..."
	}
	gap := bannerWidth - len(runes)
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}

// paragraph greedily wraps whitespace-separated words at the wrap budget,
// measured in runes. A word wider than the budget gets its own overlong line.
func (r *Renderer) paragraph(s ports.Surface, node *document.LayoutNode, indent int) {
	words := strings.Fields(deref(node.Text))
	in := pad(indent)

	line := ""
	count := 0 // rune length of line
	for _, word := range words {
		wlen := utf8.RuneCountInString(word)
		switch {
		case line == "":
			line, count = word, wlen
		case count+1+wlen <= r.width:
			line += " " + word
			count += 1 + wlen
		default:
			s.WriteLine(in + line)
			line, count = word, wlen
		}
	}
	if line != "" {
		s.WriteLine(in + line)
	}
}

func (r *Renderer) button(s ports.Surface, node *document.LayoutNode, indent int) {
	text := fallback(node.Text, "Button")
	id := ""
	if v := deref(node.ID); v != "" {
		id = " [" + v + "]"
	}
	s.WriteLine(pad(indent) + " [" + text + "] " + id)
}

func (r *Renderer) link(s ports.Surface, node *document.LayoutNode, indent int) {
	text := fallback(node.Text, "Link")
	dest := ""
	if v := deref(node.Destination); v != "" {
		dest = " → " + v
	}
	s.WriteLine(pad(indent) + " 🔗 " + text + dest)
}

func (r *Renderer) input(s ports.Surface, node *document.LayoutNode, indent int) {
	kind := ""
	if v := deref(node.FormType); v != "" {
		kind = " (" + v + ")"
	}
	required := ""
	if node.Required != nil && *node.Required {
		required = " *"
	}
	placeholder := fallback(node.Placeholder, "Enter text...")
	s.WriteLine(fmt.Sprintf("%s📝 [input: %s%s%s] '%s'", pad(indent), deref(node.ID), kind, required, placeholder))
}

func (r *Renderer) form(s ports.Surface, node *document.LayoutNode, indent int) {
	in := pad(indent)
	s.WriteLine(in + "┌─ FORM ───")
	for i := range node.Children {
		r.RenderNode(s, &node.Children[i], indent+2)
	}
	s.WriteLine(in + "└──────────")
}

// table draws nothing at all when tableData is absent or empty.
func (r *Renderer) table(s ports.Surface, node *document.LayoutNode, indent int) {
	if len(node.TableData) == 0 {
		return
	}
	in := pad(indent)
	s.WriteLine(in + "┌─ TABLE ───")
	for _, row := range node.TableData {
		s.WriteLine(in + "│ " + strings.Join(row, " │ "))
	}
	s.WriteLine(in + "└──────────")
}

// code emits every line verbatim, without wrapping or reindenting.
func (r *Renderer) code(s ports.Surface, node *document.LayoutNode, indent int) {
	lang := ""
	if v := deref(node.Language); v != "" {
		lang = " (" + v + ")"
	}
	in := pad(indent)
	s.WriteLine(in + "┌─ CODE" + lang + " ───")
	for _, line := range strings.Split(deref(node.Text), "\n") {
		s.WriteLine(in + "│ " + line)
	}
	s.WriteLine(in + "└──────────")
}

func (r *Renderer) image(s ports.Surface, node *document.LayoutNode, indent int) {
	s.WriteLine(pad(indent) + "🖼️ [image: " + deref(node.Source) + "]" + dimensions(node))
}

func (r *Renderer) audio(s ports.Surface, node *document.LayoutNode, indent int) {
	state := "🔈"
	if node.Autoplay != nil && *node.Autoplay {
		state = "▶️ auto"
	}
	s.WriteLine(pad(indent) + state + " [audio: " + deref(node.Source) + "]" + controlsTag(node))
}

func (r *Renderer) video(s ports.Surface, node *document.LayoutNode, indent int) {
	state := "🎥"
	if node.Autoplay != nil && *node.Autoplay {
		state = "▶️ auto"
	}
	s.WriteLine(pad(indent) + state + " [video: " + deref(node.Source) + "]" + controlsTag(node) + dimensions(node))
}

// dimensions formats " (WxH)" when both width and height are present and
// non-zero, else the empty string.
func dimensions(node *document.LayoutNode) string {
	if node.Width == nil || node.Height == nil || *node.Width == 0 || *node.Height == 0 {
		return ""
	}
	return fmt.Sprintf(" (%dx%d)", *node.Width, *node.Height)
}

// controlsTag marks controls only when they are explicitly enabled. An
// absent controls key draws no tag even though action collection treats
// absence as controls-on.
func controlsTag(node *document.LayoutNode) string {
	if node.Controls != nil && *node.Controls {
		return " [controls]"
	}
	return ""
}

func (r *Renderer) column(s ports.Surface, node *document.LayoutNode, indent int) {
	for i := range node.Children {
		r.RenderNode(s, &node.Children[i], indent)
	}
}

// row flattens its children onto a single line. Only text, button and link
// children participate; every other kind is skipped without a sub-render.
func (r *Renderer) row(s ports.Surface, node *document.LayoutNode, indent int) {
	var items []string
	for i := range node.Children {
		child := &node.Children[i]
		switch {
		case child.IsParagraph():
			items = append(items, deref(child.Text))
		case child.Type == document.NodeTypeButton:
			items = append(items, "["+deref(child.Text)+"]")
		case child.Type == document.NodeTypeLink:
			items = append(items, "🔗"+deref(child.Text))
		}
	}
	if len(items) == 0 {
		return
	}
	s.WriteLine(pad(indent) + strings.Join(items, " | "))
}

// grid boxes its children. Each child is drawn at indent zero with the cell
// marker spliced onto its first line; subsequent lines of the same child are
// emitted as-is.
func (r *Renderer) grid(s ports.Surface, node *document.LayoutNode, indent int) {
	in := pad(indent)
	s.WriteLine(in + "┌─ Grid ───")
	for i := range node.Children {
		if i > 0 {
			s.WriteLine(in + "├──────────")
		}
		var cell Buffer
		if err := r.renderNode(&cell, &node.Children[i], 0); err != nil {
			cell.Clear()
			cell.WriteLine("⚠ render error: " + err.Error())
		}
		lines := cell.Lines()
		if len(lines) == 0 {
			s.WriteLine(in + "│ ")
			continue
		}
		s.WriteLine(in + "│ " + lines[0])
		for _, line := range lines[1:] {
			s.WriteLine(line)
		}
	}
	s.WriteLine(in + "└──────────")
}

func pad(indent int) string {
	if indent <= 0 {
		return ""
	}
	return strings.Repeat(" ", indent)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// fallback mirrors wire semantics where both an absent and an empty value
// fall through to the default.
func fallback(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
