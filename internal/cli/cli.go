// Package cli is the interactive terminal frontend. It renders the active
// tab with header chrome, numbers the page's action catalog, and routes
// global commands until the user quits.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/novabrowser/nova"
	"github.com/novabrowser/nova/internal/browser"
	"github.com/novabrowser/nova/internal/theme"
	"github.com/novabrowser/nova/pkg/document"
)

// Runner drives one browsing session over a line-oriented terminal. It
// implements ports.Prompter so dispatched actions can ask the user for
// search queries and form values through the same input stream.
type Runner struct {
	browser     *nova.Browser
	input       io.Reader
	writer      io.Writer
	reader      *bufio.Reader
	renderHelp  func(string) (string, error)
	interactive bool

	// set by Run; the pump goroutine feeds lines so prompts stay
	// cancelable mid-read.
	ctx   context.Context
	lines chan readResult
}

type readResult struct {
	text string
	err  error
}

// Option adjusts a Runner before first use.
type Option func(*Runner)

// WithInput replaces stdin, typically with a scripted reader in tests.
func WithInput(in io.Reader) Option {
	return func(r *Runner) { r.input = in }
}

// WithOutput replaces stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.writer = w }
}

// New wires a Runner around an assembled browser. Screen clearing and
// "press Enter" pauses engage only when both ends are real terminals.
func New(b *nova.Browser, opts ...Option) *Runner {
	r := &Runner{browser: b}
	for _, opt := range opts {
		opt(r)
	}

	interactiveIn := false
	if r.input == nil {
		r.input = os.Stdin
		interactiveIn = term.IsTerminal(int(os.Stdin.Fd()))
	}
	interactiveOut := false
	if r.writer == nil {
		r.writer = os.Stdout
		interactiveOut = term.IsTerminal(int(os.Stdout.Fd()))
	}
	r.interactive = interactiveIn && interactiveOut
	r.reader = bufio.NewReader(r.input)

	if tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle()); err == nil {
		r.renderHelp = tr.Render
	}
	return r
}

// Run shows the start page and serves the command loop until the user
// quits, input ends, or ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	r.ctx = ctx
	r.lines = make(chan readResult)
	go r.pumpLines(ctx)

	banner(r.writer)
	fmt.Fprintln(r.writer, r.style(theme.Header, "🚀 Nova Browser - Production Ready"))
	fmt.Fprintln(r.writer, r.style(theme.Success, "✨ Secure, Fast, Privacy-First Browsing"))
	fmt.Fprintln(r.writer)

	if _, err := r.browser.Load(ctx, r.browser.Home()); err != nil {
		// The tab still holds a renderable error page.
		fmt.Fprintln(r.writer, r.style(theme.Warning, fmt.Sprintf("⚠️ Start page: %v", err)))
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tab := r.browser.Engine().ActiveTab()
		if tab == nil || tab.Document == nil {
			fmt.Fprintln(r.writer, r.style(theme.Error, "❌ No document loaded!"))
			return nil
		}

		if r.interactive {
			fmt.Fprint(r.writer, "\x1b[2J\x1b[H")
		}
		r.renderTab(tab)
		actions := r.browser.Actions(tab.Document)
		r.showActionsMenu(actions)

		choice, err := r.readLine(r.style(theme.Warning, "Enter choice:") + " ")
		if err != nil {
			fmt.Fprintln(r.writer)
			break
		}
		if !r.handleChoice(ctx, strings.ToLower(strings.TrimSpace(choice)), actions) {
			break
		}
	}

	fmt.Fprintln(r.writer, r.style(theme.Success, "👋 Nova Browser shut down successfully"))
	return ctx.Err()
}

// pumpLines feeds reader lines to the command loop. Closing the channel
// on read error turns an exhausted script into io.EOF for every later
// prompt instead of a hang.
func (r *Runner) pumpLines(ctx context.Context) {
	defer close(r.lines)
	for {
		text, err := r.reader.ReadString('\n')
		select {
		case r.lines <- readResult{text: text, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (r *Runner) style(el theme.Element, text string) string {
	return r.browser.Engine().Theme().Apply(el, text)
}

// renderTab prints the header chrome around the plain rendered document.
func (r *Runner) renderTab(tab *browser.Tab) {
	w := r.writer

	fmt.Fprintln(w, r.style(theme.Header, "╔"+strings.Repeat("═", 78)+"╗"))
	title := truncate(tab.Title, 60)
	url := truncate(tab.URL, 70)
	fmt.Fprintln(w, r.style(theme.Header, "║ 📑 "+padRight(title, 74)+" ║"))
	fmt.Fprintln(w, r.style(theme.Header, "║ 🔗 "+padRight(url, 74)+" ║"))
	fmt.Fprintln(w, r.style(theme.Header, "╠"+strings.Repeat("═", 78)+"╣"))

	if tab.Meta.Title != "" {
		fmt.Fprintln(w, r.style(theme.Info, "📖 "+tab.Meta.Title))
	}
	if tab.Meta.Description != "" {
		fmt.Fprintln(w, "  "+tab.Meta.Description)
	}
	if tab.LoadTime > 0 {
		fmt.Fprintln(w, r.style(theme.Success, fmt.Sprintf("⚡ Loaded in %.2fs", tab.LoadTime.Seconds())))
	}
	fmt.Fprintln(w, r.style(theme.Border, strings.Repeat("─", 80)))

	fmt.Fprint(w, r.browser.RenderToString(tab.Document))
}

func (r *Runner) showActionsMenu(actions []document.Action) {
	w := r.writer
	if len(actions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.style(theme.Warning, "🔄 Available actions:"))
		for i, action := range actions {
			fmt.Fprintf(w, "  %d. %s %s\n", i+1, browser.ActionIcon(action.Type), browser.ActionDescription(action))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.style(theme.Info, "Global commands:"))
	fmt.Fprintln(w, "  new - New tab | tabs - List tabs | tab N - Switch tab")
	fmt.Fprintln(w, "  back - Previous page | reload - Refresh | bookmark - Save page")
	fmt.Fprintln(w, "  bookmarks - List saved | status - Browser info")
	fmt.Fprintln(w, "  quit - Exit | help - Show help")
}

// handleChoice runs one command or action and reports whether the loop
// should continue.
func (r *Runner) handleChoice(ctx context.Context, choice string, actions []document.Action) bool {
	switch {
	case choice == "quit":
		return false

	case choice == "reload":
		if _, err := r.browser.Engine().Reload(ctx); err != nil && !errors.Is(err, browser.ErrNoTab) {
			r.Notify(r.style(theme.Warning, fmt.Sprintf("⚠️ %v", err)))
		}

	case choice == "back":
		if _, err := r.browser.Engine().Back(ctx); err != nil {
			if errors.Is(err, browser.ErrNoEarlierPage) || errors.Is(err, browser.ErrNoTab) {
				r.Notify(r.style(theme.Warning, "⚠️ No earlier page"))
			} else {
				r.Notify(r.style(theme.Warning, fmt.Sprintf("⚠️ %v", err)))
			}
		}

	case choice == "status":
		_ = r.browser.Dispatch(ctx, document.Action{Type: document.ActionShowStats}, r)
		r.pause()

	case choice == "tabs":
		r.showTabs()
		r.pause()

	case choice == "new":
		r.newTab(ctx)

	case choice == "bookmark":
		mark, err := r.browser.Engine().BookmarkActiveTab(ctx)
		if err != nil {
			r.Notify(r.style(theme.Warning, fmt.Sprintf("⚠️ %v", err)))
		} else {
			r.Notify(r.style(theme.Success, "🔖 Bookmarked: "+mark.Title))
		}

	case choice == "bookmarks":
		r.showBookmarks(ctx)
		r.pause()

	case choice == "help":
		r.showHelp()
		r.pause()

	case strings.HasPrefix(choice, "tab "):
		r.selectTab(strings.TrimSpace(strings.TrimPrefix(choice, "tab ")))

	case isDigits(choice):
		idx, _ := strconv.Atoi(choice)
		if idx < 1 || idx > len(actions) {
			r.Notify(r.style(theme.Error, "❌ Invalid action number"))
			return true
		}
		action := actions[idx-1]
		if err := r.browser.Dispatch(ctx, action, r); err != nil {
			r.Notify(r.style(theme.Error, fmt.Sprintf("❌ Action failed: %v", err)))
		}
		switch action.Type {
		case document.ActionShowStats, document.ActionShowHistory, document.ActionShowPermissions:
			r.pause()
		}

	default:
		r.Notify(r.style(theme.Error, "❌ Unknown command: "+choice))
	}
	return true
}

func (r *Runner) newTab(ctx context.Context) {
	url, err := r.Prompt("Enter URL for new tab:")
	if err != nil || url == "" {
		return
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "file:///") {
		url = "https://" + url
	}
	r.browser.Engine().NewTab(url)
	if _, err := r.browser.Load(ctx, url); err != nil {
		r.Notify(r.style(theme.Warning, fmt.Sprintf("⚠️ %v", err)))
	}
}

func (r *Runner) showTabs() {
	engine := r.browser.Engine()
	tabs := engine.Tabs()
	active := engine.ActiveTab()

	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, r.style(theme.Header, "📑 OPEN TABS"))
	for i, tab := range tabs {
		marker := "   "
		if active != nil && tab.ID == active.ID {
			marker = " → "
		}
		fmt.Fprintf(r.writer, "  %d.%s%s\n", i+1, marker, tab.Title)
	}
	if len(tabs) > 1 {
		fmt.Fprintln(r.writer, r.style(theme.Info, "Tip: 'tab N' switches tabs, 'new' opens another"))
	}
}

func (r *Runner) selectTab(arg string) {
	n, err := strconv.Atoi(arg)
	tabs := r.browser.Engine().Tabs()
	if err != nil || n < 1 || n > len(tabs) {
		r.Notify(r.style(theme.Error, "❌ Invalid tab number"))
		return
	}
	r.browser.Engine().SelectTab(tabs[n-1].ID)
}

func (r *Runner) showBookmarks(ctx context.Context) {
	marks, err := r.browser.Engine().Bookmarks(ctx)
	if err != nil {
		r.Notify(r.style(theme.Warning, fmt.Sprintf("⚠️ %v", err)))
		return
	}
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, r.style(theme.Header, "🔖 BOOKMARKS"))
	if len(marks) == 0 {
		fmt.Fprintln(r.writer, "  (none saved)")
		return
	}
	for i, mark := range marks {
		fmt.Fprintf(r.writer, "  %d. %s (%s)\n", i+1, mark.Title, mark.URL)
	}
}

func (r *Runner) showHelp() {
	if r.renderHelp == nil {
		fmt.Fprintln(r.writer, helpMarkdown)
		return
	}
	out, err := r.renderHelp(helpMarkdown)
	if err != nil {
		fmt.Fprintln(r.writer, helpMarkdown)
		return
	}
	fmt.Fprint(r.writer, out)
}

// pause waits for Enter so command output survives the next screen clear.
func (r *Runner) pause() {
	if !r.interactive {
		return
	}
	_, _ = r.readLine("\n" + r.style(theme.Info, "Press Enter to continue... "))
}

// Prompt implements ports.Prompter.
func (r *Runner) Prompt(label string) (string, error) {
	return r.readLine(r.style(theme.Warning, label) + " ")
}

// Notify implements ports.Prompter.
func (r *Runner) Notify(line string) {
	fmt.Fprintln(r.writer, line)
}

// readLine prints the prompt and returns one sanitized line. Rejected
// input re-prompts, matching how size and encoding violations should
// never abort the session.
func (r *Runner) readLine(prompt string) (string, error) {
	for {
		fmt.Fprint(r.writer, prompt)
		raw, err := r.nextLine()
		line := strings.TrimSpace(raw)
		if line == "" && err != nil {
			return "", err
		}
		clean, serr := SanitizeInput(line)
		if serr != nil {
			fmt.Fprintln(r.writer, r.style(theme.Error, fmt.Sprintf("Error: %v. Please try again.", serr)))
			if err != nil {
				return "", err
			}
			continue
		}
		return clean, nil
	}
}

func (r *Runner) nextLine() (string, error) {
	if r.lines == nil {
		return r.reader.ReadString('\n')
	}
	select {
	case <-r.ctx.Done():
		return "", r.ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.text, res.err
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
