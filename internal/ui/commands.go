// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea application for the blueprint TUI.
//
// This file defines the tea.Cmd constructors that perform network and
// desktop I/O. Commands run on their own goroutines; everything they learn
// comes back as a message from messages.go.
package ui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planhaus/blueprint-tui/internal/api"
	"github.com/planhaus/blueprint-tui/internal/blueprint"
	"github.com/planhaus/blueprint-tui/internal/feed"
	"github.com/planhaus/blueprint-tui/internal/generation"
	"github.com/planhaus/blueprint-tui/internal/history"
)

// =============================================================================
// GENERATION COMMANDS
// =============================================================================

// generateCmd performs one generation request under the given ticket. The
// client's own timeout bounds the call; the token travels with the outcome
// so the controller can discard it if a newer submission exists by then.
func generateCmd(client *api.Client, ticket generation.Ticket) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Generate(context.Background(), ticket.Prompt)
		if err != nil {
			return GenerateDoneMsg{Token: ticket.Token, Err: err}
		}
		result, err := blueprint.ResultFromResponse(ticket.Prompt, resp)
		if err != nil {
			return GenerateDoneMsg{Token: ticket.Token, Err: err}
		}
		return GenerateDoneMsg{Token: ticket.Token, Result: result}
	}
}

// probeImageCmd checks that one result image URL is reachable.
func probeImageCmd(client *api.Client, url string) tea.Cmd {
	return func() tea.Msg {
		return ImageProbedMsg{URL: url, Err: client.ProbeImage(context.Background(), url)}
	}
}

// =============================================================================
// FEED COMMANDS
// =============================================================================

// loadFeedPageCmd asks the loader for the next page. A concurrent call is
// not an error at the UI level; the loader's rejection just means a fetch
// is already running and its message will arrive.
func loadFeedPageCmd(loader *feed.Loader) tea.Cmd {
	return func() tea.Msg {
		added, err := loader.LoadNext(context.Background())
		if errors.Is(err, feed.ErrFetchInProgress) {
			return nil
		}
		return FeedPageMsg{Added: added, Err: err}
	}
}

// =============================================================================
// HISTORY COMMANDS
// =============================================================================

// recordHistoryCmd archives a successful generation. A nil store (history
// disabled) is a silent no-op.
func recordHistoryCmd(store *history.Store, result blueprint.Result) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entry := history.Entry{
			Prompt:         result.Prompt,
			LayoutImageURL: result.Images[0].URL,
		}
		if len(result.Images) > 1 {
			entry.SDImageURL = result.Images[1].URL
		}
		_, err := store.Record(entry)
		return HistoryRecordedMsg{Err: err}
	}
}

// loadHistoryCmd fetches the archived generations for the History tab.
func loadHistoryCmd(store *history.Store) tea.Cmd {
	if store == nil {
		return func() tea.Msg { return HistoryLoadedMsg{} }
	}
	return func() tea.Msg {
		entries, err := store.List(0)
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// =============================================================================
// DESKTOP COMMANDS
// =============================================================================

// openURLCmd opens a URL in the system browser.
func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return URLOpenedMsg{URL: url, Err: openBrowser(url)}
	}
}

// copyURLCmd puts a URL on the system clipboard.
func copyURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return URLCopiedMsg{URL: url, Err: clipboard.WriteAll(url)}
	}
}
