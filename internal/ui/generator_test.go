// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planhaus/blueprint-tui/internal/blueprint"
	"github.com/planhaus/blueprint-tui/internal/ui/styles"
)

func newTestGenerator() Generator {
	return NewGenerator(styles.NewTheme(), DefaultKeyMap())
}

func press(g Generator, keys ...tea.KeyMsg) Generator {
	for _, k := range keys {
		g, _ = g.Update(k)
	}
	return g
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGeneratorCounters(t *testing.T) {
	g := newTestGenerator()

	// Two bedrooms, then down to bathroom for one.
	g = press(g, runes("+"), runes("+"))
	g = press(g, tea.KeyMsg{Type: tea.KeyDown}, runes("+"))

	params := g.Params()
	if params.Counts[blueprint.Bedroom] != 2 {
		t.Errorf("bedrooms = %d, want 2", params.Counts[blueprint.Bedroom])
	}
	if params.Counts[blueprint.Bathroom] != 1 {
		t.Errorf("bathrooms = %d, want 1", params.Counts[blueprint.Bathroom])
	}
}

func TestGeneratorCounterBounds(t *testing.T) {
	g := newTestGenerator()

	g = press(g, runes("-"))
	if got := g.Params().Counts[blueprint.Bedroom]; got != 0 {
		t.Errorf("count went negative: %d", got)
	}

	for i := 0; i < 20; i++ {
		g = press(g, runes("+"))
	}
	if got := g.Params().Counts[blueprint.Bedroom]; got != maxRoomCount {
		t.Errorf("count = %d, want cap %d", got, maxRoomCount)
	}
}

func TestGeneratorEntrywayToggle(t *testing.T) {
	g := newTestGenerator()

	g = press(g, runes("e"))
	if !g.Params().IncludeEntryway {
		t.Error("entryway should be on after toggle")
	}
	g = press(g, runes("e"))
	if g.Params().IncludeEntryway {
		t.Error("entryway should be off after second toggle")
	}
}

func TestGeneratorModeToggle(t *testing.T) {
	g := newTestGenerator()
	if g.Mode() != blueprint.ModeParameters {
		t.Fatal("form should start in parameters mode")
	}

	g = press(g, tea.KeyMsg{Type: tea.KeyTab})
	if g.Mode() != blueprint.ModeText {
		t.Fatal("Tab should switch to text mode")
	}

	// Typing lands in the description, including letters bound to form
	// shortcuts in the other mode.
	g = press(g, runes("e"))
	if g.Text() != "e" {
		t.Errorf("text = %q, want %q", g.Text(), "e")
	}
	if g.Params().IncludeEntryway {
		t.Error("typing in text mode must not touch the entryway toggle")
	}

	g = press(g, tea.KeyMsg{Type: tea.KeyTab})
	if g.Mode() != blueprint.ModeParameters {
		t.Error("Tab should switch back to parameters mode")
	}
}

func TestGeneratorPreviewTracksParameters(t *testing.T) {
	g := newTestGenerator()
	g.SetWidth(100)

	g = press(g, runes("+"), runes("+")) // 2 bedroom

	if !strings.Contains(g.View(), "I need a house with 2 bedroom.") {
		t.Error("preview missing the derived prompt")
	}
}
