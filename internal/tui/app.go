// Package tui is the full-screen terminal frontend built on bubbletea.
// The left pane scrolls the rendered document, the right pane lists the
// page's actions, and a one-line prompt collects the answers an action
// needs before it is dispatched.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/novabrowser/nova"
	"github.com/novabrowser/nova/internal/browser"
	"github.com/novabrowser/nova/internal/theme"
	"github.com/novabrowser/nova/pkg/document"
)

type appState int

const (
	stateBrowse appState = iota
	statePrompt
)

type paneFocus int

const (
	focusActions paneFocus = iota
	focusPage
)

type promptKind int

const (
	promptOpenURL promptKind = iota
	promptNewTab
	promptAction
)

const defaultHint = "tab focus · enter run · o open · n new tab · [ ] switch · b back · r reload · q quit"

// loadedMsg reports a finished page load. The tab itself is read back
// from the engine; err is display-only because failed loads still
// install a renderable error page.
type loadedMsg struct {
	err error
}

// dispatchedMsg reports a finished action dispatch.
type dispatchedMsg struct {
	err     error
	notices []string
}

// actionItem adapts one catalog action to the list widget.
type actionItem struct {
	action document.Action
}

func (i actionItem) Title() string {
	return fmt.Sprintf("%s %s", browser.ActionIcon(i.action.Type), browser.ActionDescription(i.action))
}

func (i actionItem) Description() string { return i.action.Type }

func (i actionItem) FilterValue() string { return browser.ActionDescription(i.action) }

// queuedPrompter feeds pre-collected answers to Dispatch and captures
// its notices for the status line.
type queuedPrompter struct {
	answers []string
	notices []string
}

func (p *queuedPrompter) Prompt(string) (string, error) {
	if len(p.answers) == 0 {
		return "", fmt.Errorf("no queued answer for prompt")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *queuedPrompter) Notify(line string) {
	p.notices = append(p.notices, line)
}

// App is the bubbletea model holding all frontend state.
type App struct {
	browser *nova.Browser

	state appState
	focus paneFocus
	page  viewport.Model
	menu  list.Model
	input textinput.Model

	promptKind    promptKind
	promptLabel   string
	promptLabels  []string
	promptAnswers []string
	pendingAction document.Action

	width  int
	height int
	ready  bool

	statusMsg string
}

// NewApp wires the widgets around an assembled browser.
func NewApp(b *nova.Browser) *App {
	menu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Actions"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)

	input := textinput.New()
	input.Prompt = "❯ "

	return &App{
		browser:   b,
		page:      viewport.New(0, 0),
		menu:      menu,
		input:     input,
		statusMsg: defaultHint,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, b *nova.Browser) error {
	program := tea.NewProgram(NewApp(b), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init loads the start page.
func (a *App) Init() tea.Cmd {
	return a.loadCmd(a.browser.Home())
}

// Update is the message loop.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case loadedMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("⚠ %v", msg.err)
		} else {
			a.statusMsg = defaultHint
		}
		a.refreshPage()
		return a, nil

	case dispatchedMsg:
		switch {
		case msg.err != nil:
			a.statusMsg = fmt.Sprintf("⚠ %v", msg.err)
		case len(msg.notices) > 0:
			a.statusMsg = msg.notices[len(msg.notices)-1]
		}
		a.refreshPage()
		return a, nil

	case tea.KeyMsg:
		if a.state == statePrompt {
			return a.updatePrompt(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "tab":
			if a.focus == focusActions {
				a.focus = focusPage
			} else {
				a.focus = focusActions
			}
			return a, nil
		case "o":
			return a, a.beginPrompt(promptOpenURL, "Open URL:")
		case "n":
			return a, a.beginPrompt(promptNewTab, "Enter URL for new tab:")
		case "b":
			return a, a.backCmd()
		case "r":
			return a, a.reloadCmd()
		case "[":
			a.cycleTab(-1)
			return a, nil
		case "]":
			a.cycleTab(1)
			return a, nil
		case "enter":
			if a.focus == focusActions {
				return a.runSelectedAction()
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch {
	case a.state == statePrompt:
		a.input, cmd = a.input.Update(msg)
		cmds = append(cmds, cmd)
	case a.focus == focusActions:
		a.menu, cmd = a.menu.Update(msg)
		cmds = append(cmds, cmd)
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			a.page, cmd = a.page.Update(msg)
			cmds = append(cmds, cmd)
		}
	default:
		a.page, cmd = a.page.Update(msg)
		cmds = append(cmds, cmd)
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			a.menu, cmd = a.menu.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		a.closePrompt()
		return a, nil
	case "enter":
		return a.submitPrompt(strings.TrimSpace(a.input.Value()))
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) beginPrompt(kind promptKind, label string) tea.Cmd {
	a.state = statePrompt
	a.promptKind = kind
	a.promptLabel = label
	a.input.SetValue("")
	return a.input.Focus()
}

func (a *App) closePrompt() {
	a.state = stateBrowse
	a.input.Blur()
	a.input.SetValue("")
	a.promptLabel = ""
	a.promptLabels = nil
	a.promptAnswers = nil
}

func (a *App) submitPrompt(value string) (tea.Model, tea.Cmd) {
	kind := a.promptKind
	switch kind {
	case promptOpenURL, promptNewTab:
		a.closePrompt()
		if value == "" {
			return a, nil
		}
		url := normalizeURL(value)
		if kind == promptNewTab {
			a.browser.Engine().NewTab(url)
		}
		a.statusMsg = "Loading " + url
		return a, a.loadCmd(url)

	case promptAction:
		a.promptAnswers = append(a.promptAnswers, value)
		a.promptLabels = a.promptLabels[1:]
		if len(a.promptLabels) > 0 {
			a.promptLabel = a.promptLabels[0]
			a.input.SetValue("")
			return a, nil
		}
		action := a.pendingAction
		answers := a.promptAnswers
		a.closePrompt()
		return a, a.dispatchCmd(action, answers)
	}

	a.closePrompt()
	return a, nil
}

func (a *App) runSelectedAction() (tea.Model, tea.Cmd) {
	item, ok := a.menu.SelectedItem().(actionItem)
	if !ok {
		return a, nil
	}
	labels := a.browser.Engine().PromptLabels(item.action)
	if len(labels) == 0 {
		return a, a.dispatchCmd(item.action, nil)
	}
	a.pendingAction = item.action
	a.promptLabels = labels
	a.promptAnswers = nil
	return a, a.beginPrompt(promptAction, labels[0])
}

func (a *App) loadCmd(url string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.browser.Load(context.Background(), url)
		return loadedMsg{err: err}
	}
}

func (a *App) backCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := a.browser.Engine().Back(context.Background())
		return loadedMsg{err: err}
	}
}

func (a *App) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := a.browser.Engine().Reload(context.Background())
		return loadedMsg{err: err}
	}
}

func (a *App) dispatchCmd(action document.Action, answers []string) tea.Cmd {
	return func() tea.Msg {
		p := &queuedPrompter{answers: answers}
		err := a.browser.Dispatch(context.Background(), action, p)
		return dispatchedMsg{err: err, notices: p.notices}
	}
}

func (a *App) cycleTab(delta int) {
	engine := a.browser.Engine()
	tabs := engine.Tabs()
	active := engine.ActiveTab()
	if len(tabs) < 2 || active == nil {
		return
	}
	idx := 0
	for i, tab := range tabs {
		if tab.ID == active.ID {
			idx = i
			break
		}
	}
	next := (idx + delta + len(tabs)) % len(tabs)
	engine.SelectTab(tabs[next].ID)
	a.refreshPage()
}

// refreshPage re-renders the active tab into the viewport and rebuilds
// the action menu from its catalog.
func (a *App) refreshPage() {
	tab := a.browser.Engine().ActiveTab()
	if tab == nil || tab.Document == nil {
		a.page.SetContent("No document loaded.")
		a.menu.SetItems(nil)
		return
	}
	a.page.SetContent(a.browser.RenderToString(tab.Document))
	a.page.GotoTop()

	actions := a.browser.Actions(tab.Document)
	items := make([]list.Item, len(actions))
	for i := range actions {
		items[i] = actionItem{action: actions[i]}
	}
	a.menu.SetItems(items)
	if len(items) > 0 {
		a.menu.Select(0)
	}
}

func (a *App) layout() {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	menuWidth := max(32, a.width/3)
	pageWidth := a.width - menuWidth - 6
	if pageWidth < 20 {
		pageWidth = a.width - 4
		menuWidth = 24
	}
	bodyHeight := max(5, a.height-6)
	a.page.Width = max(20, pageWidth)
	a.page.Height = bodyHeight
	a.menu.SetSize(max(20, menuWidth-4), bodyHeight)
	a.ready = true
}

// View renders header, panes and the status or prompt footer.
func (a *App) View() string {
	if !a.ready {
		return "Starting Nova..."
	}
	return strings.Join([]string{a.renderHeader(), a.renderBody(), a.renderFooter()}, "\n")
}

func (a *App) renderHeader() string {
	th := a.browser.Engine().Theme()
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(th.Foreground(theme.Header)))

	engine := a.browser.Engine()
	tabs := engine.Tabs()
	active := engine.ActiveTab()
	label := "✦ NOVA"
	if active != nil {
		pos := 1
		for i, tab := range tabs {
			if tab.ID == active.ID {
				pos = i + 1
				break
			}
		}
		label = fmt.Sprintf("✦ NOVA · tab %d/%d · %s", pos, len(tabs), active.URL)
	}
	return style.Render(label)
}

func (a *App) renderBody() string {
	th := a.browser.Engine().Theme()
	dim := lipgloss.Color("#444444")
	focused := lipgloss.Color(th.Foreground(theme.Info))

	pageBorder, menuBorder := dim, dim
	if a.focus == focusPage {
		pageBorder = focused
	} else {
		menuBorder = focused
	}

	pageBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pageBorder).
		Padding(0, 1).
		Render(a.page.View())
	menuBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(menuBorder).
		Padding(0, 1).
		Render(a.menu.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, pageBox, menuBox)
}

func (a *App) renderFooter() string {
	if a.state == statePrompt {
		label := lipgloss.NewStyle().Bold(true).Render(a.promptLabel)
		return label + " " + a.input.View()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(a.statusMsg)
}

func normalizeURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "file:///") {
		return url
	}
	return "https://" + url
}
