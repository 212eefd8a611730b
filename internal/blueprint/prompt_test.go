// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package blueprint

import (
	"errors"
	"testing"

	"github.com/planhaus/blueprint-tui/internal/api"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name string
		p    Parameters
		want string
	}{
		{
			name: "typical house",
			p: Parameters{Counts: map[RoomKind]int{
				Bedroom:  2,
				Bathroom: 1,
				Kitchen:  1,
			}},
			want: "I need a house with 2 bedroom, 1 bathroom, 1 kitchen.",
		},
		{
			name: "canonical order is independent of map iteration",
			p: Parameters{Counts: map[RoomKind]int{
				LaundryRoom: 1,
				Bedroom:     3,
				Garage:      2,
			}},
			want: "I need a house with 3 bedroom, 2 garage, 1 laundry room.",
		},
		{
			name: "multi-word nouns stay singular",
			p: Parameters{Counts: map[RoomKind]int{
				LivingRoom: 2,
				DiningRoom: 1,
			}},
			want: "I need a house with 2 living room, 1 dining room.",
		},
		{
			name: "entryway appended last",
			p: Parameters{
				Counts:          map[RoomKind]int{Bedroom: 1, Kitchen: 1},
				IncludeEntryway: true,
			},
			want: "I need a house with 1 bedroom, 1 kitchen, 1 entryway.",
		},
		{
			name: "zero counts are omitted",
			p: Parameters{Counts: map[RoomKind]int{
				Bedroom:  2,
				Bathroom: 0,
				Garage:   0,
			}},
			want: "I need a house with 2 bedroom.",
		},
		{
			name: "empty parameters still form a sentence",
			p:    NewParameters(),
			want: "I need a house with .",
		},
		{
			name: "double digit count",
			p:    Parameters{Counts: map[RoomKind]int{Bedroom: 12}},
			want: "I need a house with 12 bedroom.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPrompt(tt.p); got != tt.want {
				t.Errorf("BuildPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParametersIsEmpty(t *testing.T) {
	if !NewParameters().IsEmpty() {
		t.Error("fresh parameters should be empty")
	}

	p := NewParameters()
	p.Counts[Kitchen] = 1
	if p.IsEmpty() {
		t.Error("parameters with a room should not be empty")
	}

	q := NewParameters()
	q.IncludeEntryway = true
	if q.IsEmpty() {
		t.Error("entryway alone counts as a selection")
	}
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"valid text", "a cozy cabin with a loft", false},
		{"empty", "", true},
		{"whitespace only", "   \t\n ", true},
		{"single word", "house", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestResultFromResponse(t *testing.T) {
	t.Run("layout only", func(t *testing.T) {
		res, err := ResultFromResponse("prompt", &api.GenerateResponse{
			LayoutImageURL: "https://img/layout.png",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Images) != 1 {
			t.Fatalf("expected 1 image, got %d", len(res.Images))
		}
		if res.Images[0].URL != "https://img/layout.png" {
			t.Errorf("unexpected URL %q", res.Images[0].URL)
		}
		if res.Images[0].Label != "Technical layout" {
			t.Errorf("unexpected label %q", res.Images[0].Label)
		}
	})

	t.Run("layout plus enhanced", func(t *testing.T) {
		res, err := ResultFromResponse("prompt", &api.GenerateResponse{
			LayoutImageURL: "https://img/layout.png",
			SDImageURL:     "https://img/sd.png",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Images) != 2 {
			t.Fatalf("expected 2 images, got %d", len(res.Images))
		}
		if res.Images[1].Label != "Enhanced visualization" {
			t.Errorf("unexpected label %q", res.Images[1].Label)
		}
	})

	t.Run("missing layout is a contract violation", func(t *testing.T) {
		_, err := ResultFromResponse("prompt", &api.GenerateResponse{SDImageURL: "https://img/sd.png"})
		if !errors.Is(err, api.ErrNoLayoutImage) {
			t.Errorf("expected ErrNoLayoutImage, got %v", err)
		}
		_, err = ResultFromResponse("prompt", nil)
		if !errors.Is(err, api.ErrNoLayoutImage) {
			t.Errorf("expected ErrNoLayoutImage for nil response, got %v", err)
		}
	})
}
