// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the blueprint TUI.
package components

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/planhaus/blueprint-tui/internal/ui/styles"
)

// =============================================================================
// HELP OVERLAY
// =============================================================================

// helpMarkdown is the help text shown by the overlay. Markdown keeps it
// readable in source and lets glamour do the terminal formatting.
const helpMarkdown = `# Blueprint

Generate architectural floor plans from a room list or a free-text
description, and browse what others have made.

## Tabs

| Key | Tab |
|-----|-----|
| ` + "`1`" + ` | Generator |
| ` + "`2`" + ` | Discover |
| ` + "`3`" + ` | History |

## Generator

- ` + "`up`/`down`" + ` move between room rows
- ` + "`+`/`-`" + ` (or ` + "`left`/`right`" + `) change the room count
- ` + "`e`" + ` toggle the entryway
- ` + "`tab`" + ` switch between room counts and free-text description
- ` + "`enter`" + ` generate; submitting again replaces the pending request

## Result viewer

- ` + "`left`/`right`" + ` cycle through the result images (wraps around)
- ` + "`o`" + ` open the current image in the browser
- ` + "`y`" + ` copy the current image URL
- ` + "`esc`" + ` back to the form

## Discover

- ` + "`up`/`down`" + ` scroll; reaching the bottom loads the next page
- ` + "`r`" + ` retry after a failed page load
- ` + "`R`" + ` reload the feed from the start

Press ` + "`?`" + ` to close this help, ` + "`q`" + ` to quit.
`

// HelpOverlay renders the keyboard reference over the main view.
type HelpOverlay struct {
	renderer *glamour.TermRenderer
	rendered string
	width    int
}

// NewHelpOverlay creates the overlay. Glamour failures degrade to the raw
// markdown text rather than hiding the help.
func NewHelpOverlay() *HelpOverlay {
	h := &HelpOverlay{width: 72}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(h.width),
	)
	if err == nil {
		h.renderer = renderer
	}
	return h
}

// SetWidth adjusts word wrap for the current terminal size.
func (h *HelpOverlay) SetWidth(width int) {
	w := width - 8
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	if w == h.width {
		return
	}
	h.width = w
	h.rendered = ""
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(w),
	)
	if err == nil {
		h.renderer = renderer
	}
}

// View renders the help content inside a bordered box.
func (h *HelpOverlay) View() string {
	if h.rendered == "" {
		h.rendered = helpMarkdown
		if h.renderer != nil {
			if out, err := h.renderer.Render(helpMarkdown); err == nil {
				h.rendered = out
			}
		}
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Blueprint).
		Padding(0, 1).
		Render(h.rendered)
}
