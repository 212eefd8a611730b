// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planhaus/blueprint-tui/internal/api"
	"github.com/planhaus/blueprint-tui/internal/blueprint"
	"github.com/planhaus/blueprint-tui/internal/config"
	"github.com/planhaus/blueprint-tui/internal/generation"
)

func newTestApp() *App {
	cfg := config.DefaultConfig()
	client := api.NewClient("http://localhost:1", nil)
	return NewApp(cfg, client, nil)
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabSwitching(t *testing.T) {
	app := newTestApp()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if app.tab != TabGenerator {
		t.Fatalf("start tab = %v, want Generator", app.tab)
	}

	app.Update(keyPress("2"))
	if app.tab != TabDiscover {
		t.Errorf("tab = %v, want Discover", app.tab)
	}

	app.Update(keyPress("3"))
	if app.tab != TabHistory {
		t.Errorf("tab = %v, want History", app.tab)
	}

	app.Update(keyPress("1"))
	if app.tab != TabGenerator {
		t.Errorf("tab = %v, want Generator", app.tab)
	}
}

func TestGenerateSuccessShowsResult(t *testing.T) {
	app := newTestApp()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	ticket, err := app.controller.Submit(blueprint.ModeText, blueprint.Parameters{}, "a lake house")
	if err != nil {
		t.Fatal(err)
	}

	result := blueprint.Result{
		Prompt: ticket.Prompt,
		Images: []blueprint.ImageRef{{URL: "https://img/layout.png", Label: "Technical layout"}},
	}
	app.Update(GenerateDoneMsg{Token: ticket.Token, Result: result})

	if !app.showingResult {
		t.Error("successful generation should show the result carousel")
	}
	if app.controller.Snapshot().Phase != generation.Succeeded {
		t.Errorf("phase = %v, want Succeeded", app.controller.Snapshot().Phase)
	}
	if app.viewer.Current().URL != "https://img/layout.png" {
		t.Errorf("viewer shows %q", app.viewer.Current().URL)
	}
}

func TestStaleGenerateOutcomeIgnored(t *testing.T) {
	app := newTestApp()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	old, _ := app.controller.Submit(blueprint.ModeText, blueprint.Parameters{}, "first")
	fresh, _ := app.controller.Submit(blueprint.ModeText, blueprint.Parameters{}, "second")

	freshResult := blueprint.Result{
		Prompt: fresh.Prompt,
		Images: []blueprint.ImageRef{{URL: "https://img/fresh.png"}},
	}
	app.Update(GenerateDoneMsg{Token: fresh.Token, Result: freshResult})

	// The old request failing afterwards must change nothing.
	app.Update(GenerateDoneMsg{Token: old.Token, Err: errors.New("timeout")})

	if !app.showingResult {
		t.Error("stale failure hid the fresh result")
	}
	if app.viewer.Current().URL != "https://img/fresh.png" {
		t.Errorf("viewer shows %q, want the fresh result", app.viewer.Current().URL)
	}
	if app.controller.Snapshot().Phase != generation.Succeeded {
		t.Errorf("phase = %v, want Succeeded", app.controller.Snapshot().Phase)
	}
}

func TestEmptyTextSubmissionRejectedLocally(t *testing.T) {
	app := newTestApp()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	// Switch to text mode, then submit with nothing typed.
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := app.handleGeneratorKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("rejected submission must not produce a network command")
	}
	if app.controller.Snapshot().Phase != generation.Idle {
		t.Errorf("phase = %v, want Idle", app.controller.Snapshot().Phase)
	}
	if !app.notices.HasNotices() {
		t.Error("validation failure should surface a notice")
	}
}

func TestProbeOutcomeReachesViewer(t *testing.T) {
	app := newTestApp()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	ticket, _ := app.controller.Submit(blueprint.ModeText, blueprint.Parameters{}, "a cabin")
	app.Update(GenerateDoneMsg{Token: ticket.Token, Result: blueprint.Result{
		Prompt: ticket.Prompt,
		Images: []blueprint.ImageRef{
			{URL: "https://img/layout.png"},
			{URL: "https://img/sd.png"},
		},
	}})

	app.Update(ImageProbedMsg{URL: "https://img/sd.png", Err: errors.New("404")})

	if app.viewer.Failed("https://img/layout.png") {
		t.Error("healthy image marked failed")
	}
	if !app.viewer.Failed("https://img/sd.png") {
		t.Error("broken image not marked failed")
	}
}
