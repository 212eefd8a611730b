// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea application for the blueprint TUI.
//
// This file defines all Bubble Tea message types used by the application.
// Messages are organized into the following categories:
//   - Generation: request outcomes carrying the submission token
//   - Images: reachability probe results for result images
//   - Feed: page load outcomes for the Discover tab
//   - History: archive load and record outcomes
//   - Desktop: browser open and clipboard outcomes
//
// All message types follow Bubble Tea conventions and are immutable.
package ui

import (
	"github.com/planhaus/blueprint-tui/internal/blueprint"
	"github.com/planhaus/blueprint-tui/internal/history"
)

// =============================================================================
// GENERATION MESSAGES
// =============================================================================

// GenerateDoneMsg delivers the outcome of one generation request. Token is
// the submission token the request was issued under; the controller decides
// whether the outcome is still current.
type GenerateDoneMsg struct {
	Token  uint64
	Result blueprint.Result
	Err    error
}

// =============================================================================
// IMAGE MESSAGES
// =============================================================================

// ImageProbedMsg reports whether an image URL is reachable. Failures are
// tracked per URL: one broken image never hides its siblings.
type ImageProbedMsg struct {
	URL string
	Err error
}

// =============================================================================
// FEED MESSAGES
// =============================================================================

// FeedPageMsg delivers the outcome of one feed page load.
type FeedPageMsg struct {
	// Added is how many entries the page contributed.
	Added int
	Err   error
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers the archived generations for the History tab.
type HistoryLoadedMsg struct {
	Entries []history.Entry
	Err     error
}

// HistoryRecordedMsg confirms that a generation was archived.
type HistoryRecordedMsg struct {
	Err error
}

// =============================================================================
// DESKTOP MESSAGES
// =============================================================================

// URLOpenedMsg reports the outcome of opening a URL in the browser.
type URLOpenedMsg struct {
	URL string
	Err error
}

// URLCopiedMsg reports the outcome of copying a URL to the clipboard.
type URLCopiedMsg struct {
	URL string
	Err error
}
