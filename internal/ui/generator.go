// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/planhaus/blueprint-tui/internal/blueprint"
	"github.com/planhaus/blueprint-tui/internal/ui/styles"
)

// =============================================================================
// GENERATOR FORM
// =============================================================================

// maxRoomCount caps a single room counter. Nobody needs more than nine
// laundry rooms, and the cap keeps the column width fixed.
const maxRoomCount = 9

var titleCaser = cases.Title(language.English)

// Generator is the request form: one counter row per room kind plus the
// entryway toggle, or a free-text description when toggled over.
type Generator struct {
	theme *styles.Theme
	keys  KeyMap

	mode   blueprint.PromptMode
	params blueprint.Parameters

	// focus is the highlighted row in parameters mode: one row per room
	// kind, then the entryway row.
	focus int

	text textarea.Model

	width int
}

// NewGenerator creates the form with no rooms selected.
func NewGenerator(theme *styles.Theme, keys KeyMap) Generator {
	ta := textarea.New()
	ta.Placeholder = "Describe the house you want..."
	ta.CharLimit = 500
	ta.SetHeight(4)
	ta.SetWidth(60)

	return Generator{
		theme:  theme,
		keys:   keys,
		params: blueprint.NewParameters(),
		text:   ta,
	}
}

// Params returns the current structured parameters.
func (g *Generator) Params() blueprint.Parameters {
	return g.params
}

// Mode returns the active prompt mode.
func (g *Generator) Mode() blueprint.PromptMode {
	return g.mode
}

// Text returns the free-text description.
func (g *Generator) Text() string {
	return g.text.Value()
}

// SetWidth updates the rendered width.
func (g *Generator) SetWidth(w int) {
	g.width = w
	tw := w - 8
	if tw > 76 {
		tw = 76
	}
	if tw < 20 {
		tw = 20
	}
	g.text.SetWidth(tw)
}

// rowCount is the number of focusable rows in parameters mode.
func (g *Generator) rowCount() int {
	return len(blueprint.RoomKinds) + 1 // entryway row
}

// entrywayRow is the focus index of the entryway toggle.
func (g *Generator) entrywayRow() int {
	return len(blueprint.RoomKinds)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key input for the form. Submission is not handled here;
// the app model owns the enter key so it can route the ticket.
func (g Generator) Update(msg tea.Msg) (Generator, tea.Cmd) {
	if g.mode == blueprint.ModeText {
		keyMsg, ok := msg.(tea.KeyMsg)
		if ok && key.Matches(keyMsg, g.keys.ToggleTab) {
			g.mode = blueprint.ModeParameters
			g.text.Blur()
			return g, nil
		}
		var cmd tea.Cmd
		g.text, cmd = g.text.Update(msg)
		return g, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch {
	case key.Matches(keyMsg, g.keys.ToggleTab):
		g.mode = blueprint.ModeText
		return g, g.text.Focus()

	case key.Matches(keyMsg, g.keys.Up):
		if g.focus > 0 {
			g.focus--
		}

	case key.Matches(keyMsg, g.keys.Down):
		if g.focus < g.rowCount()-1 {
			g.focus++
		}

	case key.Matches(keyMsg, g.keys.Increment), key.Matches(keyMsg, g.keys.Right):
		g.adjust(1)

	case key.Matches(keyMsg, g.keys.Decrement), key.Matches(keyMsg, g.keys.Left):
		g.adjust(-1)

	case key.Matches(keyMsg, g.keys.Entryway):
		g.params.IncludeEntryway = !g.params.IncludeEntryway
	}

	return g, nil
}

// adjust changes the focused counter (or toggles the entryway row).
func (g *Generator) adjust(delta int) {
	if g.focus == g.entrywayRow() {
		g.params.IncludeEntryway = delta > 0
		return
	}
	kind := blueprint.RoomKinds[g.focus]
	n := g.params.Counts[kind] + delta
	if n < 0 {
		n = 0
	}
	if n > maxRoomCount {
		n = maxRoomCount
	}
	g.params.Counts[kind] = n
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the form with a live prompt preview underneath.
func (g *Generator) View() string {
	var b strings.Builder

	if g.mode == blueprint.ModeText {
		b.WriteString(g.theme.FormHint.Render("Describe the house in your own words. Tab switches back to room counts."))
		b.WriteString("\n\n")
		b.WriteString(g.text.View())
	} else {
		for i, kind := range blueprint.RoomKinds {
			label := titleCaser.String(kind.Noun())
			labelStyle := g.theme.FormLabel
			cursor := "  "
			if i == g.focus {
				labelStyle = g.theme.FormLabelFocused
				cursor = "> "
			}
			count := g.params.Counts[kind]
			countText := strconv.Itoa(count)
			if count == 0 {
				countText = "-"
			}
			b.WriteString(cursor + labelStyle.Render(label) +
				g.theme.FormCount.Render(countText) + "\n")
		}

		entrywayStyle := g.theme.FormLabel
		cursor := "  "
		if g.focus == g.entrywayRow() {
			entrywayStyle = g.theme.FormLabelFocused
			cursor = "> "
		}
		mark := "[ ]"
		if g.params.IncludeEntryway {
			mark = "[x]"
		}
		b.WriteString(cursor + entrywayStyle.Render("Entryway") +
			g.theme.FormCount.Render(mark) + "\n")

		b.WriteString("\n")
		b.WriteString(g.theme.FormHint.Render("up/down select  +/- adjust  e entryway  Tab free text  Enter generate"))
	}

	form := b.String()

	preview := g.theme.PromptPreview.Render(
		g.theme.PromptPreviewText.Render(g.previewText()))

	return lipgloss.JoinVertical(lipgloss.Left, form, "", preview)
}

// previewText shows what will actually be sent.
func (g *Generator) previewText() string {
	if g.mode == blueprint.ModeText {
		text := strings.TrimSpace(g.text.Value())
		if text == "" {
			return "(nothing yet)"
		}
		return text
	}
	return blueprint.BuildPrompt(g.params)
}
