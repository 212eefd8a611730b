// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/planhaus/blueprint-tui/internal/blueprint"
	"github.com/planhaus/blueprint-tui/internal/ui/styles"
)

// =============================================================================
// RESULT VIEWER
// =============================================================================

// Viewer is the carousel over a generation result's images.
//
// Navigation wraps in both directions. Load state is tracked per image URL:
// an unreachable enhanced visualization shows its failure panel while the
// technical layout next to it stays perfectly viewable.
type Viewer struct {
	theme *styles.Theme

	images []blueprint.ImageRef
	index  int

	// probe state, keyed by image URL
	loaded   map[string]bool
	failures map[string]string

	width int
}

// NewViewer creates an empty viewer.
func NewViewer(theme *styles.Theme) Viewer {
	return Viewer{
		theme:    theme,
		loaded:   make(map[string]bool),
		failures: make(map[string]string),
	}
}

// SetResult loads a new result into the viewer, starting at the first
// image with fresh probe state.
func (v *Viewer) SetResult(result blueprint.Result) {
	v.images = result.Images
	v.index = 0
	v.loaded = make(map[string]bool)
	v.failures = make(map[string]string)
}

// HasImages reports whether there is anything to show.
func (v *Viewer) HasImages() bool {
	return len(v.images) > 0
}

// Count returns the number of images.
func (v *Viewer) Count() int {
	return len(v.images)
}

// Index returns the current position.
func (v *Viewer) Index() int {
	return v.index
}

// Current returns the image under the cursor.
func (v *Viewer) Current() blueprint.ImageRef {
	if len(v.images) == 0 {
		return blueprint.ImageRef{}
	}
	return v.images[v.index]
}

// Next advances to the next image, wrapping past the last back to the
// first.
func (v *Viewer) Next() {
	if len(v.images) == 0 {
		return
	}
	v.index = (v.index + 1) % len(v.images)
}

// Prev steps to the previous image, wrapping past the first back to the
// last.
func (v *Viewer) Prev() {
	if len(v.images) == 0 {
		return
	}
	v.index = (v.index - 1 + len(v.images)) % len(v.images)
}

// MarkProbe records the outcome of a reachability probe for one URL.
func (v *Viewer) MarkProbe(url string, err error) {
	if err != nil {
		v.failures[url] = "This image could not be loaded."
		delete(v.loaded, url)
		return
	}
	v.loaded[url] = true
	delete(v.failures, url)
}

// Failed reports whether the given URL has a recorded load failure.
func (v *Viewer) Failed(url string) bool {
	_, ok := v.failures[url]
	return ok
}

// SetWidth updates the rendered width.
func (v *Viewer) SetWidth(w int) {
	v.width = w
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the current image panel.
func (v *Viewer) View() string {
	if len(v.images) == 0 {
		return ""
	}

	img := v.images[v.index]

	header := v.theme.ViewerLabel.Render(img.Label) + "  " +
		v.theme.ViewerPosition.Render(
			strconv.Itoa(v.index+1)+"/"+strconv.Itoa(len(v.images)))

	var body string
	switch {
	case v.failures[img.URL] != "":
		body = v.theme.ImageFailure.Render(styles.StatusIndicators.Error+" "+v.failures[img.URL]) + "\n" +
			v.theme.ViewerDescription.Render("Press o to try it in your browser instead.")
	case v.loaded[img.URL]:
		body = v.theme.ViewerDescription.Render(img.Description) + "\n" +
			v.theme.ViewerURL.Render(img.URL)
	default:
		body = v.theme.PendingText.Render("Checking image...") + "\n" +
			v.theme.ViewerURL.Render(img.URL)
	}

	hints := v.theme.ShortcutDesc.Render("left/right browse  o open  y copy  Esc back")

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", hints)

	frame := v.theme.ViewerFrame
	if v.width > 0 {
		frame = frame.Width(min(v.width-4, 80))
	}
	return frame.Render(content)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
