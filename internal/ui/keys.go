// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea application for the blueprint TUI.
//
// This file defines keyboard bindings for the application. Each binding
// supports multiple keys and includes help text for the status bar.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the application.
type KeyMap struct {
	// Global
	TabGenerator key.Binding
	TabDiscover  key.Binding
	TabHistory   key.Binding
	Help         key.Binding
	Quit         key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Generator
	Submit    key.Binding
	Increment key.Binding
	Decrement key.Binding
	Entryway  key.Binding
	ToggleTab key.Binding
	Back      key.Binding

	// Result viewer and feed
	OpenURL key.Binding
	CopyURL key.Binding
	Retry   key.Binding
	Reload  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TabGenerator: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "generator"),
		),
		TabDiscover: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "discover"),
		),
		TabHistory: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "generate"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "fewer"),
		),
		Entryway: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "toggle entryway"),
		),
		ToggleTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "rooms/text"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		OpenURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy URL"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload feed"),
		),
	}
}
