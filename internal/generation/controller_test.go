// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package generation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/planhaus/blueprint-tui/internal/api"
	"github.com/planhaus/blueprint-tui/internal/blueprint"
)

func params(counts map[blueprint.RoomKind]int) blueprint.Parameters {
	return blueprint.Parameters{Counts: counts}
}

func TestSubmitAndResolve(t *testing.T) {
	c := New()

	ticket, err := c.Submit(blueprint.ModeParameters, params(map[blueprint.RoomKind]int{
		blueprint.Bedroom:  2,
		blueprint.Bathroom: 1,
		blueprint.Kitchen:  1,
	}), "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if got, want := ticket.Prompt, "I need a house with 2 bedroom, 1 bathroom, 1 kitchen."; got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
	if c.Snapshot().Phase != Pending {
		t.Fatalf("phase after submit = %v, want Pending", c.Snapshot().Phase)
	}

	result, err := blueprint.ResultFromResponse(ticket.Prompt, &api.GenerateResponse{
		LayoutImageURL: "https://img/layout.png",
	})
	if err != nil {
		t.Fatalf("ResultFromResponse failed: %v", err)
	}
	if !c.Resolve(ticket.Token, result) {
		t.Fatal("fresh resolution should land")
	}

	st := c.Snapshot()
	if st.Phase != Succeeded {
		t.Errorf("phase = %v, want Succeeded", st.Phase)
	}
	if len(st.Result.Images) != 1 || st.Result.Images[0].URL != "https://img/layout.png" {
		t.Errorf("unexpected result images: %+v", st.Result.Images)
	}
}

func TestLastSubmittedWins(t *testing.T) {
	c := New()

	first, err := c.Submit(blueprint.ModeParameters, params(map[blueprint.RoomKind]int{blueprint.Bedroom: 1}), "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	second, err := c.Submit(blueprint.ModeParameters, params(map[blueprint.RoomKind]int{blueprint.Bedroom: 2}), "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// The second request's response arrives first.
	secondResult := blueprint.Result{Prompt: second.Prompt, Images: []blueprint.ImageRef{{URL: "https://img/second.png"}}}
	if !c.Resolve(second.Token, secondResult) {
		t.Fatal("latest resolution should land")
	}

	// The first request's slow response must be discarded, whatever it is.
	firstResult := blueprint.Result{Prompt: first.Prompt, Images: []blueprint.ImageRef{{URL: "https://img/first.png"}}}
	if c.Resolve(first.Token, firstResult) {
		t.Fatal("stale success must be discarded")
	}
	if c.Reject(first.Token, errors.New("timeout")) {
		t.Fatal("stale failure must be discarded")
	}

	st := c.Snapshot()
	if st.Phase != Succeeded {
		t.Errorf("phase = %v, want Succeeded", st.Phase)
	}
	if st.Result.Images[0].URL != "https://img/second.png" {
		t.Errorf("state shows %q, want the latest submission's result", st.Result.Images[0].URL)
	}
}

func TestStaleFailureDoesNotClobberPending(t *testing.T) {
	c := New()

	first, _ := c.Submit(blueprint.ModeParameters, params(map[blueprint.RoomKind]int{blueprint.Bedroom: 1}), "")
	second, _ := c.Submit(blueprint.ModeParameters, params(map[blueprint.RoomKind]int{blueprint.Bedroom: 2}), "")

	if c.Reject(first.Token, errors.New("connection reset")) {
		t.Fatal("stale failure must be discarded")
	}
	if st := c.Snapshot(); st.Phase != Pending {
		t.Errorf("phase = %v, want Pending while the latest request is in flight", st.Phase)
	}

	if !c.Reject(second.Token, &api.APIError{Status: http.StatusBadGateway}) {
		t.Fatal("fresh failure should land")
	}
	if st := c.Snapshot(); st.Phase != Failed {
		t.Errorf("phase = %v, want Failed", st.Phase)
	}
}

func TestRejectMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server detail passes through",
			err:  &api.APIError{Status: http.StatusInternalServerError, Detail: "model unavailable"},
			want: "model unavailable",
		},
		{
			name: "status without detail falls back",
			err:  &api.APIError{Status: http.StatusBadGateway},
			want: "The request failed. Please try again.",
		},
		{
			name: "transport error falls back",
			err:  errors.New("dial tcp: connection refused"),
			want: "The request failed. Please try again.",
		},
		{
			name: "contract violation falls back",
			err:  api.ErrNoLayoutImage,
			want: "The request failed. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			ticket, _ := c.Submit(blueprint.ModeParameters, params(map[blueprint.RoomKind]int{blueprint.Kitchen: 1}), "")
			if !c.Reject(ticket.Token, tt.err) {
				t.Fatal("fresh failure should land")
			}
			st := c.Snapshot()
			if st.Phase != Failed {
				t.Fatalf("phase = %v, want Failed", st.Phase)
			}
			if st.Message != tt.want {
				t.Errorf("message = %q, want %q", st.Message, tt.want)
			}
		})
	}
}

func TestTextModeValidation(t *testing.T) {
	c := New()

	_, err := c.Submit(blueprint.ModeText, blueprint.Parameters{}, "   ")
	var ve *blueprint.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *blueprint.ValidationError, got %v", err)
	}
	if st := c.Snapshot(); st.Phase != Idle {
		t.Errorf("rejected input must not change phase, got %v", st.Phase)
	}

	ticket, err := c.Submit(blueprint.ModeText, blueprint.Parameters{}, "a two story lake house")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if ticket.Prompt != "a two story lake house" {
		t.Errorf("text mode must send the text verbatim, got %q", ticket.Prompt)
	}
}

func TestResubmitAfterFailure(t *testing.T) {
	c := New()

	first, _ := c.Submit(blueprint.ModeParameters, params(map[blueprint.RoomKind]int{blueprint.Bedroom: 1}), "")
	c.Reject(first.Token, &api.APIError{Status: http.StatusInternalServerError, Detail: "model unavailable"})

	second, _ := c.Submit(blueprint.ModeParameters, params(map[blueprint.RoomKind]int{blueprint.Bedroom: 1}), "")
	if st := c.Snapshot(); st.Phase != Pending || st.Message != "" {
		t.Errorf("resubmit must clear the failure: phase=%v message=%q", st.Phase, st.Message)
	}

	c.Resolve(second.Token, blueprint.Result{Images: []blueprint.ImageRef{{URL: "https://img/x.png"}}})
	if st := c.Snapshot(); st.Phase != Succeeded {
		t.Errorf("phase = %v, want Succeeded", st.Phase)
	}
}
