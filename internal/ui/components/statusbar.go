// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the blueprint TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planhaus/blueprint-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusGenerating
	StatusLoading
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusGenerating:
		return "Generating..."
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusGenerating, StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// Shortcut is one key binding shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom status bar: current status on the left,
// connection state and shortcuts on the right.
type StatusBar struct {
	Status        Status
	Backend       string // service host shown when connected
	Authenticated bool
	Width         int
	Shortcuts     []Shortcut
	theme         *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the rendered width.
func (b *StatusBar) SetWidth(w int) {
	b.Width = w
}

// View renders the status bar.
func (b *StatusBar) View() string {
	var statusStyle lipgloss.Style
	switch b.Status {
	case StatusError:
		statusStyle = b.theme.ErrorStyle
	case StatusGenerating, StatusLoading:
		statusStyle = b.theme.WarningStyle
	default:
		statusStyle = b.theme.SuccessStyle
	}
	left := statusStyle.Render(b.Status.Icon() + " " + b.Status.String())

	var parts []string
	if b.Backend != "" {
		auth := "anonymous"
		if b.Authenticated {
			auth = "signed in"
		}
		parts = append(parts, b.theme.ShortcutDesc.Render(b.Backend+" ("+auth+")"))
	}
	for _, sc := range b.Shortcuts {
		parts = append(parts,
			b.theme.ShortcutKey.Render(sc.Key)+" "+b.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(parts, "  ")

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return b.theme.StatusBar.Width(b.Width).Render(
		left + strings.Repeat(" ", gap) + right)
}
