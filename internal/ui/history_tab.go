// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planhaus/blueprint-tui/internal/history"
	"github.com/planhaus/blueprint-tui/internal/ui/styles"
	"github.com/planhaus/blueprint-tui/internal/util"
)

// =============================================================================
// HISTORY TAB
// =============================================================================

// HistoryTab lists locally archived generations, newest first.
type HistoryTab struct {
	theme *styles.Theme
	keys  KeyMap

	entries []history.Entry
	cursor  int
	failure string

	enabled bool
	width   int
	height  int
}

// NewHistoryTab creates the tab. When the archive is disabled in config the
// tab just says so.
func NewHistoryTab(theme *styles.Theme, keys KeyMap, enabled bool) HistoryTab {
	return HistoryTab{theme: theme, keys: keys, enabled: enabled}
}

// SetSize updates the layout.
func (h *HistoryTab) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Selected returns the entry under the cursor, if any.
func (h *HistoryTab) Selected() (history.Entry, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return history.Entry{}, false
	}
	return h.entries[h.cursor], true
}

// Update handles input and archive messages.
func (h HistoryTab) Update(msg tea.Msg) (HistoryTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, h.keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, h.keys.Down):
			if h.cursor < len(h.entries)-1 {
				h.cursor++
			}
		case key.Matches(msg, h.keys.OpenURL):
			if e, ok := h.Selected(); ok {
				return h, openURLCmd(e.LayoutImageURL)
			}
		case key.Matches(msg, h.keys.CopyURL):
			if e, ok := h.Selected(); ok {
				return h, copyURLCmd(e.LayoutImageURL)
			}
		}

	case HistoryLoadedMsg:
		if msg.Err != nil {
			h.failure = "Could not read the local archive."
		} else {
			h.failure = ""
			h.entries = msg.Entries
			if h.cursor >= len(h.entries) {
				h.cursor = 0
			}
		}
	}
	return h, nil
}

// View renders the archive list.
func (h *HistoryTab) View() string {
	if !h.enabled {
		return h.theme.FormHint.Render("History is disabled in the configuration.")
	}
	if h.failure != "" {
		return h.theme.ErrorStyle.Render(styles.StatusIndicators.Error + " " + h.failure)
	}
	if len(h.entries) == 0 {
		return h.theme.FormHint.Render("No archived generations yet. Successful results land here.")
	}

	maxVisible := h.height - 4
	if maxVisible < 3 {
		maxVisible = 3
	}

	// Keep the cursor on screen with a simple window.
	start := 0
	if h.cursor >= maxVisible {
		start = h.cursor - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(h.entries) {
		end = len(h.entries)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		e := h.entries[i]
		prompt := util.TruncateRunes(e.Prompt, 70)
		when := e.CreatedAt.Format("2006-01-02 15:04")

		line := prompt + "  " + h.theme.FeedCardMeta.Render(when)
		if i == h.cursor {
			b.WriteString("> " + h.theme.FormLabelFocused.UnsetWidth().Render(prompt) +
				"  " + h.theme.FeedCardMeta.Render(when) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(h.theme.FormHint.Render("up/down select  o open layout  y copy URL"))
	return b.String()
}
