// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"

	"github.com/planhaus/blueprint-tui/internal/feed"
	"github.com/planhaus/blueprint-tui/internal/ui/components"
	"github.com/planhaus/blueprint-tui/internal/ui/styles"
	"github.com/planhaus/blueprint-tui/internal/util"
)

// =============================================================================
// DISCOVER TAB
// =============================================================================

// Discover renders the community feed. Scrolling to the bottom loads the
// next page; a short page latches the end marker and stops all fetching.
//
// PERFORMANCE: Scroll-triggered loads run through a rate limiter so a held
// down-arrow key cannot hammer the service while a page is on its way.
type Discover struct {
	theme  *styles.Theme
	keys   KeyMap
	loader *feed.Loader

	viewport viewport.Model
	spinner  components.Spinner
	limiter  *rate.Limiter

	// failure is the user-facing message after a failed page load. Retry
	// re-requests the same page; nothing already shown is lost.
	failure string

	started bool
	width   int
	height  int
}

// NewDiscover creates the feed tab around a loader.
func NewDiscover(theme *styles.Theme, keys KeyMap, loader *feed.Loader) Discover {
	vp := viewport.New(80, 20)
	return Discover{
		theme:    theme,
		keys:     keys,
		loader:   loader,
		viewport: vp,
		spinner:  components.NewFetchSpinner(),
		limiter:  rate.NewLimiter(rate.Limit(2), 1), // at most 2 triggers/sec
	}
}

// SetSize updates the layout.
func (d *Discover) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	vh := height - 4
	if vh < 3 {
		vh = 3
	}
	d.viewport.Height = vh
	d.refreshContent()
}

// Activate kicks off the initial page load the first time the tab is
// shown.
func (d *Discover) Activate() tea.Cmd {
	if d.started {
		return nil
	}
	d.started = true
	return tea.Batch(d.spinner.Start(), loadFeedPageCmd(d.loader))
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles input and feed messages for the tab.
func (d Discover) Update(msg tea.Msg) (Discover, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Retry):
			if d.failure != "" {
				d.failure = ""
				cmds = append(cmds, d.spinner.Start(), loadFeedPageCmd(d.loader))
			}

		case key.Matches(msg, d.keys.Reload):
			d.loader.Reset()
			d.failure = ""
			d.refreshContent()
			cmds = append(cmds, d.spinner.Start(), loadFeedPageCmd(d.loader))

		default:
			var cmd tea.Cmd
			d.viewport, cmd = d.viewport.Update(msg)
			cmds = append(cmds, cmd)

			// Reaching the bottom asks for more, throttled.
			if d.viewport.AtBottom() && !d.loader.Exhausted() &&
				!d.loader.Loading() && d.failure == "" && d.limiter.Allow() {
				cmds = append(cmds, d.spinner.Start(), loadFeedPageCmd(d.loader))
			}
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		cmds = append(cmds, cmd)
		if d.viewport.AtBottom() && !d.loader.Exhausted() &&
			!d.loader.Loading() && d.failure == "" && d.limiter.Allow() {
			cmds = append(cmds, d.spinner.Start(), loadFeedPageCmd(d.loader))
		}

	case FeedPageMsg:
		d.spinner.Stop()
		if msg.Err != nil {
			d.failure = "Could not load more plans. Press r to retry."
		} else {
			d.refreshContent()
		}

	default:
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return d, tea.Batch(cmds...)
}

// =============================================================================
// VIEW
// =============================================================================

// refreshContent rebuilds the viewport from the loader's entries.
func (d *Discover) refreshContent() {
	entries := d.loader.Entries()
	if len(entries) == 0 {
		d.viewport.SetContent(d.theme.FeedLoadingHint.Render("Nothing here yet."))
		return
	}

	cardWidth := d.width - 4
	if cardWidth > 76 {
		cardWidth = 76
	}
	if cardWidth < 30 {
		cardWidth = 30
	}

	var cards []string
	for _, e := range entries {
		prompt := util.TruncateRunes(e.Prompt, 120)
		body := d.theme.FeedCardPrompt.Render(prompt) + "\n" +
			d.theme.LinkStyle.Render(e.LayoutImageURL)
		if e.SDImageURL != "" {
			body += "\n" + d.theme.LinkStyle.Render(e.SDImageURL)
		}
		if e.CreatedAt != "" {
			body += "\n" + d.theme.FeedCardMeta.Render(e.CreatedAt)
		}
		cards = append(cards, d.theme.FeedCard.Width(cardWidth).Render(body))
	}

	if d.loader.Exhausted() {
		cards = append(cards, d.theme.FeedEndMarker.Width(cardWidth).Render("--- end of feed ---"))
	}

	d.viewport.SetContent(strings.Join(cards, "\n"))
}

// View renders the feed tab.
func (d *Discover) View() string {
	var footer string
	switch {
	case d.failure != "":
		footer = d.theme.FeedErrorBanner.Render(styles.StatusIndicators.Error + " " + d.failure)
	case d.spinner.IsActive():
		footer = d.spinner.View()
	case d.loader.Exhausted():
		footer = d.theme.FeedLoadingHint.Render("You have seen everything.")
	default:
		footer = d.theme.FeedLoadingHint.Render("Scroll down for more.")
	}

	return lipgloss.JoinVertical(lipgloss.Left, d.viewport.View(), "", footer)
}
