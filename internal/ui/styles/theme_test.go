// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: mode = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestRenderHelpersIncludeIndicators(t *testing.T) {
	if !strings.Contains(RenderSuccess("done"), StatusIndicators.Success) {
		t.Error("RenderSuccess missing shape indicator")
	}
	if !strings.Contains(RenderError("failed"), StatusIndicators.Error) {
		t.Error("RenderError missing shape indicator")
	}
	if !strings.Contains(RenderWarning("careful"), StatusIndicators.Warning) {
		t.Error("RenderWarning missing shape indicator")
	}
}
