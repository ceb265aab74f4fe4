// Package theme maps document element classes to terminal styles. Styling is
// host chrome only: the renderer's output stays plain and hosts decorate
// menus, prompts and status lines around it.
package theme

import "github.com/muesli/termenv"

// Element classes a host may style. The set mirrors what the interactive
// frontends decorate; unknown elements pass text through unstyled.
type Element string

const (
	Header    Element = "header"
	Title     Element = "title"
	Text      Element = "text"
	Link      Element = "link"
	Button    Element = "button"
	Input     Element = "input"
	Success   Element = "success"
	Error     Element = "error"
	Warning   Element = "warning"
	Info      Element = "info"
	Border    Element = "border"
	Highlight Element = "highlight"
)

// style is a flat ANSI spec. Colors are 16-color indices kept as strings so
// they can feed termenv and lipgloss alike.
type style struct {
	fg        string
	bg        string
	bold      bool
	underline bool
}

var palettes = map[string]map[Element]style{
	"default": {
		Header:    {fg: "13"},
		Title:     {fg: "12", bold: true},
		Text:      {},
		Link:      {fg: "14", underline: true},
		Button:    {fg: "15", bg: "4", bold: true},
		Input:     {fg: "0", bg: "7"},
		Success:   {fg: "10", bold: true},
		Error:     {fg: "9", bold: true},
		Warning:   {fg: "11", bold: true},
		Info:      {fg: "14"},
		Border:    {fg: "12"},
		Highlight: {fg: "0", bg: "2"},
	},
	"dark": {
		Header:    {fg: "14", bold: true},
		Title:     {fg: "10", bold: true},
		Text:      {fg: "15"},
		Link:      {fg: "11", underline: true},
		Button:    {fg: "15", bg: "0", bold: true},
		Input:     {fg: "15", bg: "0"},
		Success:   {fg: "10", bold: true},
		Error:     {fg: "9", bold: true},
		Warning:   {fg: "11", bold: true},
		Info:      {fg: "14"},
		Border:    {fg: "14"},
		Highlight: {fg: "15", bg: "4"},
	},
	"retro": {
		Header:    {fg: "10", bold: true},
		Title:     {fg: "11", bold: true},
		Text:      {fg: "10"},
		Link:      {fg: "14", underline: true},
		Button:    {fg: "0", bg: "2", bold: true},
		Input:     {fg: "10", bg: "0"},
		Success:   {fg: "10", bold: true},
		Error:     {fg: "9", bold: true},
		Warning:   {fg: "11", bold: true},
		Info:      {fg: "14"},
		Border:    {fg: "10"},
		Highlight: {fg: "0", bg: "3"},
	},
}

// Names lists the selectable themes in menu order.
func Names() []string {
	return []string{"default", "dark", "retro"}
}

// Known reports whether name selects a defined palette.
func Known(name string) bool {
	_, ok := palettes[name]
	return ok
}

// Theme renders element classes for one terminal profile. A Theme is
// immutable; switching themes means constructing a new one.
type Theme struct {
	name    string
	profile termenv.Profile
	palette map[Element]style
}

// New selects a palette by name against the ambient terminal profile.
// Unknown names keep their label but fall back to the default palette.
func New(name string) *Theme {
	return NewWithProfile(name, termenv.ColorProfile())
}

// NewWithProfile pins the color profile explicitly. termenv.Ascii yields a
// pass-through theme, which keeps tests and piped output byte-stable.
func NewWithProfile(name string, profile termenv.Profile) *Theme {
	palette, ok := palettes[name]
	if !ok {
		palette = palettes["default"]
	}
	return &Theme{name: name, profile: profile, palette: palette}
}

func (t *Theme) Name() string { return t.name }

// Apply styles text for the element class. Elements without a spec, and the
// Ascii profile, return the text unchanged.
func (t *Theme) Apply(el Element, text string) string {
	st, ok := t.palette[el]
	if !ok {
		return text
	}
	s := t.profile.String(text)
	if st.fg != "" {
		s = s.Foreground(t.profile.Color(st.fg))
	}
	if st.bg != "" {
		s = s.Background(t.profile.Color(st.bg))
	}
	if st.bold {
		s = s.Bold()
	}
	if st.underline {
		s = s.Underline()
	}
	return s.String()
}

// Foreground exposes the element's foreground color index for frontends that
// build their own styles, for example lipgloss.Color in the TUI.
func (t *Theme) Foreground(el Element) string {
	return t.palette[el].fg
}
