// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the blueprint TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND TAB STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style

	// ==========================================================================
	// GENERATOR FORM STYLES
	// ==========================================================================

	FormLabel         lipgloss.Style
	FormLabelFocused  lipgloss.Style
	FormCount         lipgloss.Style
	FormHint          lipgloss.Style
	PromptPreview     lipgloss.Style
	PromptPreviewText lipgloss.Style

	// ==========================================================================
	// RESULT VIEWER STYLES
	// ==========================================================================

	ViewerFrame       lipgloss.Style
	ViewerLabel       lipgloss.Style
	ViewerDescription lipgloss.Style
	ViewerURL         lipgloss.Style
	ViewerPosition    lipgloss.Style
	ImageFailure      lipgloss.Style

	// ==========================================================================
	// FEED STYLES
	// ==========================================================================

	FeedCard         lipgloss.Style
	FeedCardPrompt   lipgloss.Style
	FeedCardMeta     lipgloss.Style
	FeedEndMarker    lipgloss.Style
	FeedLoadingHint  lipgloss.Style
	FeedErrorBanner  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	PendingText  lipgloss.Style
	PendingTime  lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
	ErrorTip     lipgloss.Style

	// ==========================================================================
	// STATUS INDICATOR STYLES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	LinkStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blueprint).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blueprint)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 2)

	t.TabActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Blueprint).
		Bold(true).
		Padding(0, 2)

	// Generator form
	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(14)

	t.FormLabelFocused = lipgloss.NewStyle().
		Foreground(Blueprint).
		Bold(true).
		Width(14)

	t.FormCount = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		Width(4).
		Align(lipgloss.Center)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.PromptPreview = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PromptPreviewText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Result viewer
	t.ViewerFrame = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blueprint).
		Padding(1, 2)

	t.ViewerLabel = lipgloss.NewStyle().
		Foreground(Blueprint).
		Bold(true)

	t.ViewerDescription = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ViewerURL = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	t.ViewerPosition = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ImageFailure = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Feed
	t.FeedCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.FeedCardPrompt = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.FeedCardMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FeedEndMarker = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Center)

	t.FeedLoadingHint = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.FeedErrorBanner = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Blueprint)

	t.PendingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.PendingTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Error boxes
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Background(RoseDeep).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ErrorTip = lipgloss.NewStyle().
		Foreground(Cyan).
		Italic(true)

	// Status indicators
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	t.LinkStyle = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
