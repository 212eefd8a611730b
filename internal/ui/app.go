// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"log"
	"net/url"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planhaus/blueprint-tui/internal/api"
	"github.com/planhaus/blueprint-tui/internal/blueprint"
	"github.com/planhaus/blueprint-tui/internal/config"
	"github.com/planhaus/blueprint-tui/internal/feed"
	"github.com/planhaus/blueprint-tui/internal/generation"
	"github.com/planhaus/blueprint-tui/internal/history"
	"github.com/planhaus/blueprint-tui/internal/ui/components"
	"github.com/planhaus/blueprint-tui/internal/ui/styles"
)

// =============================================================================
// TABS
// =============================================================================

// Tab identifies one of the top-level views.
type Tab int

const (
	TabGenerator Tab = iota
	TabDiscover
	TabHistory
)

// String implements fmt.Stringer.
func (t Tab) String() string {
	switch t {
	case TabGenerator:
		return "Generator"
	case TabDiscover:
		return "Discover"
	case TabHistory:
		return "History"
	default:
		return "Unknown"
	}
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model.
type App struct {
	cfg   *config.Config
	theme *styles.Theme
	keys  KeyMap

	client     *api.Client
	controller *generation.Controller
	loader     *feed.Loader
	store      *history.Store // nil when history is disabled

	tab        Tab
	generator  Generator
	viewer     Viewer
	discover   Discover
	historyTab HistoryTab

	statusBar  *components.StatusBar
	notices    *components.NoticeManager
	help       *components.HelpOverlay
	genSpinner components.Spinner

	// showingResult switches the Generator tab between the form and the
	// result carousel.
	showingResult bool
	showHelp      bool

	width  int
	height int
}

// NewApp wires the application together. store may be nil to disable the
// local archive.
func NewApp(cfg *config.Config, client *api.Client, store *history.Store) *App {
	theme := styles.NewTheme()
	keys := DefaultKeyMap()
	loader := feed.NewLoader(client, cfg.Feed.PageSize)

	bar := components.NewStatusBar(theme)
	if u, err := url.Parse(cfg.Backend.BaseURL); err == nil {
		bar.Backend = u.Host
	}
	bar.Authenticated = client.Authenticated()
	bar.Shortcuts = []components.Shortcut{
		{Key: "1/2/3", Desc: "tabs"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}

	return &App{
		cfg:        cfg,
		theme:      theme,
		keys:       keys,
		client:     client,
		controller: generation.New(),
		loader:     loader,
		store:      store,
		generator:  NewGenerator(theme, keys),
		viewer:     NewViewer(theme),
		discover:   NewDiscover(theme, keys, loader),
		historyTab: NewHistoryTab(theme, keys, store != nil),
		statusBar:  bar,
		notices:    components.NewNoticeManager(),
		help:       components.NewHelpOverlay(),
		genSpinner: components.NewGeneratingSpinner(),
	}
}

// Init starts the notice ticker and the initial history load.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		components.NoticeTickCmd(),
		loadHistoryCmd(a.store),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update is the application message loop.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		a.statusBar.SetWidth(msg.Width)
		a.help.SetWidth(msg.Width)
		a.generator.SetWidth(msg.Width)
		a.viewer.SetWidth(msg.Width)
		a.discover.SetSize(msg.Width, msg.Height-3)
		a.historyTab.SetSize(msg.Width, msg.Height-3)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case components.NoticeTickMsg:
		a.notices.Tick()
		return a, components.NoticeTickCmd()

	case GenerateDoneMsg:
		return a.handleGenerateDone(msg)

	case ImageProbedMsg:
		a.viewer.MarkProbe(msg.URL, msg.Err)
		return a, nil

	case FeedPageMsg:
		var cmd tea.Cmd
		a.discover, cmd = a.discover.Update(msg)
		return a, cmd

	case HistoryLoadedMsg:
		var cmd tea.Cmd
		a.historyTab, cmd = a.historyTab.Update(msg)
		return a, cmd

	case HistoryRecordedMsg:
		if msg.Err != nil {
			log.Printf("history: record failed: %v", msg.Err)
			return a, nil
		}
		return a, loadHistoryCmd(a.store)

	case URLOpenedMsg:
		if msg.Err != nil {
			a.notices.Add(components.NewErrorNotice("Could not open the browser."))
		}
		return a, nil

	case URLCopiedMsg:
		if msg.Err != nil {
			a.notices.Add(components.NewErrorNotice("Could not reach the clipboard."))
		} else {
			a.notices.Add(components.NewSuccessNotice("Image URL copied."))
		}
		return a, nil
	}

	// Spinners and other component messages.
	var cmd tea.Cmd
	a.genSpinner, cmd = a.genSpinner.Update(msg)
	cmds = append(cmds, cmd)
	a.discover, cmd = a.discover.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// typingText reports whether key presses currently belong to the free-text
// editor, in which case global single-letter shortcuts must not fire.
func (a *App) typingText() bool {
	return a.tab == TabGenerator && !a.showingResult &&
		a.generator.Mode() == blueprint.ModeText
}

// handleKey routes one key press.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits; plain q only outside the text editor.
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.showHelp {
		// Any key closes the help overlay.
		a.showHelp = false
		return a, nil
	}

	if !a.typingText() {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return a, nil
		case key.Matches(msg, a.keys.TabGenerator):
			a.tab = TabGenerator
			return a, nil
		case key.Matches(msg, a.keys.TabDiscover):
			a.tab = TabDiscover
			return a, a.discover.Activate()
		case key.Matches(msg, a.keys.TabHistory):
			a.tab = TabHistory
			return a, loadHistoryCmd(a.store)
		}
	} else if key.Matches(msg, a.keys.Help) {
		// '?' still types into the description.
		var cmd tea.Cmd
		a.generator, cmd = a.generator.Update(msg)
		return a, cmd
	}

	switch a.tab {
	case TabGenerator:
		return a.handleGeneratorKey(msg)
	case TabDiscover:
		var cmd tea.Cmd
		a.discover, cmd = a.discover.Update(msg)
		return a, cmd
	case TabHistory:
		var cmd tea.Cmd
		a.historyTab, cmd = a.historyTab.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleGeneratorKey routes keys on the Generator tab, which is either the
// form or the result carousel.
func (a *App) handleGeneratorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showingResult {
		switch {
		case key.Matches(msg, a.keys.Back):
			a.showingResult = false
			return a, nil
		case key.Matches(msg, a.keys.Left):
			a.viewer.Prev()
			return a, nil
		case key.Matches(msg, a.keys.Right):
			a.viewer.Next()
			return a, nil
		case key.Matches(msg, a.keys.OpenURL):
			if a.viewer.HasImages() {
				return a, openURLCmd(a.viewer.Current().URL)
			}
		case key.Matches(msg, a.keys.CopyURL):
			if a.viewer.HasImages() {
				return a, copyURLCmd(a.viewer.Current().URL)
			}
		case key.Matches(msg, a.keys.Retry):
			// Re-probe the current image.
			if a.viewer.HasImages() {
				return a, probeImageCmd(a.client, a.viewer.Current().URL)
			}
		case key.Matches(msg, a.keys.Submit):
			// Enter from the carousel resubmits the same parameters.
			return a.submit()
		}
		return a, nil
	}

	if key.Matches(msg, a.keys.Submit) {
		return a.submit()
	}

	var cmd tea.Cmd
	a.generator, cmd = a.generator.Update(msg)
	return a, cmd
}

// submit runs a generation submission through the controller.
func (a *App) submit() (tea.Model, tea.Cmd) {
	ticket, err := a.controller.Submit(a.generator.Mode(), a.generator.Params(), a.generator.Text())
	if err != nil {
		// Local validation failure; nothing was sent.
		a.notices.Add(components.NewErrorNotice(err.Error()))
		return a, nil
	}

	a.showingResult = false
	a.statusBar.Status = components.StatusGenerating
	return a, tea.Batch(a.genSpinner.Start(), generateCmd(a.client, ticket))
}

// handleGenerateDone lands a generation outcome, honoring the controller's
// last-submitted-wins ordering.
func (a *App) handleGenerateDone(msg GenerateDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if !a.controller.Reject(msg.Token, msg.Err) {
			return a, nil // stale
		}
		a.genSpinner.Stop()
		a.statusBar.Status = components.StatusError
		a.notices.Add(components.NewErrorNotice(a.controller.Snapshot().Message))
		return a, nil
	}

	if !a.controller.Resolve(msg.Token, msg.Result) {
		return a, nil // stale
	}

	a.genSpinner.Stop()
	a.statusBar.Status = components.StatusReady
	a.viewer.SetResult(msg.Result)
	a.showingResult = true
	a.tab = TabGenerator

	cmds := []tea.Cmd{recordHistoryCmd(a.store, msg.Result)}
	for _, img := range msg.Result.Images {
		cmds = append(cmds, probeImageCmd(a.client, img.URL))
	}
	return a, tea.Batch(cmds...)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the application.
func (a *App) View() string {
	if a.width == 0 {
		return "Starting..."
	}

	header := a.renderHeader()

	var body string
	switch a.tab {
	case TabGenerator:
		body = a.renderGenerator()
	case TabDiscover:
		body = a.discover.View()
	case TabHistory:
		body = a.historyTab.View()
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.theme.Container.Render(body),
	)

	// Pad to push the status bar to the bottom.
	mainHeight := lipgloss.Height(main)
	barHeight := 1
	gap := a.height - mainHeight - barHeight
	if gap > 0 {
		main = lipgloss.JoinVertical(lipgloss.Left, main,
			lipgloss.NewStyle().Height(gap).Render(""))
	}

	screen := lipgloss.JoinVertical(lipgloss.Left, main, a.statusBar.View())

	if a.showHelp {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.help.View())
	}

	if a.notices.HasNotices() {
		// Notices overlay the bottom-right corner.
		return screen + "\n" + components.RenderNoticeStack(a.notices.Active(), a.width, 0)
	}
	return screen
}

// renderHeader renders the title and tab strip.
func (a *App) renderHeader() string {
	title := a.theme.HeaderTitle.Render(" Blueprint ")

	var tabs []string
	for _, t := range []Tab{TabGenerator, TabDiscover, TabHistory} {
		if t == a.tab {
			tabs = append(tabs, a.theme.TabActive.Render(t.String()))
		} else {
			tabs = append(tabs, a.theme.Tab.Render(t.String()))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", lipgloss.JoinHorizontal(lipgloss.Center, tabs...))
}

// renderGenerator renders the form, the pending spinner, or the result.
func (a *App) renderGenerator() string {
	st := a.controller.Snapshot()

	if a.showingResult && st.Phase == generation.Succeeded {
		prompt := a.theme.PromptPreviewText.Render(st.Result.Prompt)
		return lipgloss.JoinVertical(lipgloss.Left, prompt, "", a.viewer.View())
	}

	form := a.generator.View()
	if st.Phase == generation.Pending {
		return lipgloss.JoinVertical(lipgloss.Left, form, "", a.genSpinner.View())
	}
	return form
}
