// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the blueprint TUI.
//
// This file implements non-blocking corner notices. Unlike modal dialogs,
// notices appear in the bottom-right corner and auto-dismiss, so the user
// can keep working while a failure or confirmation is on screen.
package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planhaus/blueprint-tui/internal/ui/styles"
)

// =============================================================================
// NOTICE TYPES
// =============================================================================

// NoticeKind represents the type of notice.
type NoticeKind int

const (
	// NoticeInfo is an informational notice (cyan)
	NoticeInfo NoticeKind = iota
	// NoticeError is an error notice (rose)
	NoticeError
	// NoticeWarning is a warning notice (amber)
	NoticeWarning
	// NoticeSuccess is a success notice (emerald)
	NoticeSuccess
)

// InfoNoticeDuration is the auto-dismiss duration for info notices.
const InfoNoticeDuration = 4 * time.Second

// ErrorNoticeDuration is the auto-dismiss duration for error notices.
// Longer, so the message can actually be read.
const ErrorNoticeDuration = 8 * time.Second

// =============================================================================
// NOTICE
// =============================================================================

// Notice is one non-blocking notification.
type Notice struct {
	ID        int
	Message   string
	Kind      NoticeKind
	CreatedAt time.Time
	Duration  time.Duration
}

// NewErrorNotice creates an error notice.
func NewErrorNotice(message string) Notice {
	return Notice{
		ID:        generateNoticeID(),
		Message:   message,
		Kind:      NoticeError,
		CreatedAt: time.Now(),
		Duration:  ErrorNoticeDuration,
	}
}

// NewInfoNotice creates an informational notice.
func NewInfoNotice(message string) Notice {
	return Notice{
		ID:        generateNoticeID(),
		Message:   message,
		Kind:      NoticeInfo,
		CreatedAt: time.Now(),
		Duration:  InfoNoticeDuration,
	}
}

// NewSuccessNotice creates a success notice.
func NewSuccessNotice(message string) Notice {
	return Notice{
		ID:        generateNoticeID(),
		Message:   message,
		Kind:      NoticeSuccess,
		CreatedAt: time.Now(),
		Duration:  InfoNoticeDuration,
	}
}

// IsExpired returns true if the notice should be dismissed.
func (n *Notice) IsExpired() bool {
	return time.Since(n.CreatedAt) >= n.Duration
}

// =============================================================================
// NOTICE MANAGER
// =============================================================================

// NoticeManager holds the currently visible notices, newest first.
type NoticeManager struct {
	notices []Notice
	max     int
	mutex   sync.Mutex
}

// NewNoticeManager creates a notice manager showing at most five notices.
func NewNoticeManager() *NoticeManager {
	return &NoticeManager{max: 5}
}

// Add inserts a notice and returns its ID.
func (m *NoticeManager) Add(n Notice) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.notices = append([]Notice{n}, m.notices...)
	if len(m.notices) > m.max {
		m.notices = m.notices[:m.max]
	}
	return n.ID
}

// Dismiss removes a notice by ID.
func (m *NoticeManager) Dismiss(id int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, n := range m.notices {
		if n.ID == id {
			m.notices = append(m.notices[:i], m.notices[i+1:]...)
			return
		}
	}
}

// Tick drops expired notices and returns the remainder.
func (m *NoticeManager) Tick() []Notice {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	active := m.notices[:0]
	for _, n := range m.notices {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	m.notices = active
	return m.notices
}

// Active returns a copy of the current notices.
func (m *NoticeManager) Active() []Notice {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	out := make([]Notice, len(m.notices))
	copy(out, m.notices)
	return out
}

// HasNotices returns true if anything is on screen.
func (m *NoticeManager) HasNotices() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.notices) > 0
}

// =============================================================================
// NOTICE MESSAGES
// =============================================================================

// NoticeTickMsg is sent periodically to expire notices.
type NoticeTickMsg struct {
	Time time.Time
}

// NoticeTickCmd returns a command that ticks notices every 100ms.
func NoticeTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return NoticeTickMsg{Time: t}
	})
}

// =============================================================================
// NOTICE RENDERING
// =============================================================================

// RenderNotice renders one notice box.
func RenderNotice(n Notice, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	var accent lipgloss.AdaptiveColor
	var icon string
	switch n.Kind {
	case NoticeError:
		accent = styles.Rose
		icon = styles.StatusIndicators.Error
	case NoticeWarning:
		accent = styles.Amber
		icon = styles.StatusIndicators.Warning
	case NoticeSuccess:
		accent = styles.Emerald
		icon = styles.StatusIndicators.Success
	default:
		accent = styles.Cyan
		icon = styles.StatusIndicators.Info
	}

	iconStyle := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 8)

	message := n.Message
	if len(message) > maxWidth-10 {
		message = wrapNoticeText(message, maxWidth-10)
	}

	content := iconStyle.Render(icon+" ") + messageStyle.Render(message)

	box := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 2).
		MaxWidth(maxWidth)

	return box.Render(content)
}

// RenderNoticeStack renders notices stacked in the bottom-right corner.
func RenderNoticeStack(notices []Notice, width, height int) string {
	if len(notices) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(notices))
	for _, n := range notices {
		rendered = append(rendered, RenderNotice(n, width))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	positioned := lipgloss.NewStyle().
		MarginRight(2).
		MarginBottom(1).
		Render(stack)

	if width > 0 && height > 0 {
		return lipgloss.Place(
			width, height,
			lipgloss.Right, lipgloss.Bottom,
			positioned,
		)
	}
	return positioned
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

var noticeIDMutex sync.Mutex
var noticeIDCounter int

// generateNoticeID generates a unique notice ID.
func generateNoticeID() int {
	noticeIDMutex.Lock()
	defer noticeIDMutex.Unlock()
	noticeIDCounter++
	return noticeIDCounter
}

// wrapNoticeText performs simple word wrapping for notice messages.
func wrapNoticeText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var current strings.Builder
	for _, word := range words {
		switch {
		case current.Len() == 0:
			current.WriteString(word)
		case current.Len()+1+len(word) <= maxWidth:
			current.WriteString(" ")
			current.WriteString(word)
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}
