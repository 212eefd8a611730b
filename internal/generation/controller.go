// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generation coordinates floor plan requests between the UI and the
// service client.
//
// The controller owns one piece of hard-won behavior: last-submitted-wins.
// Every submission gets a monotonically increasing token, and a resolution
// (success or failure) only lands if its token is still the latest. A user
// who resubmits while a slow request is in flight will never see the slow
// request's outcome clobber the new one, no matter which response arrives
// first.
//
// The controller does no I/O. The UI asks it for a ticket, performs the
// network call itself (as a tea.Cmd), and hands the outcome back with the
// ticket's token. This keeps the ordering logic synchronous and directly
// testable.
package generation

import (
	"errors"
	"log"
	"sync"

	"github.com/planhaus/blueprint-tui/internal/api"
	"github.com/planhaus/blueprint-tui/internal/blueprint"
)

// =============================================================================
// PHASES
// =============================================================================

// Phase is the controller's lifecycle state.
type Phase int

const (
	// Idle means no generation has been submitted yet, or state was reset.
	Idle Phase = iota
	// Pending means the latest submission has no outcome yet.
	Pending
	// Succeeded means the latest submission produced a result.
	Succeeded
	// Failed means the latest submission produced an error.
	Failed
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// fallbackMessage is shown when a failure carries no usable user-facing
// text. Status codes and raw errors stay in the log.
const fallbackMessage = "The request failed. Please try again."

// Ticket authorizes one network call. The UI passes Token back with the
// outcome so the controller can tell fresh resolutions from stale ones.
type Ticket struct {
	Token  uint64
	Prompt string
}

// State is a point-in-time snapshot of the controller, safe to render from.
type State struct {
	Phase Phase
	// Prompt is the prompt text of the latest submission.
	Prompt string
	// Result is populated when Phase is Succeeded.
	Result blueprint.Result
	// Message is the user-facing failure text when Phase is Failed.
	Message string
}

// Controller serializes generation submissions and outcomes.
type Controller struct {
	mu      sync.Mutex
	token   uint64
	phase   Phase
	prompt  string
	result  blueprint.Result
	message string
}

// New creates an idle controller.
func New() *Controller {
	return &Controller{}
}

// Submit registers a new generation attempt and returns its ticket.
//
// In ModeParameters the prompt is derived from params; the derivation is
// total, so parameter submissions never fail locally. In ModeText the text
// is validated first and a *blueprint.ValidationError is returned without
// consuming a token or touching controller state.
//
// A successful Submit supersedes any in-flight attempt: the controller goes
// Pending and earlier tokens become stale.
func (c *Controller) Submit(mode blueprint.PromptMode, params blueprint.Parameters, text string) (Ticket, error) {
	var prompt string
	switch mode {
	case blueprint.ModeText:
		if err := blueprint.ValidateText(text); err != nil {
			return Ticket{}, err
		}
		prompt = text
	default:
		prompt = blueprint.BuildPrompt(params)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.token++
	c.phase = Pending
	c.prompt = prompt
	c.result = blueprint.Result{}
	c.message = ""

	return Ticket{Token: c.token, Prompt: prompt}, nil
}

// Resolve records a successful outcome for the given token. Stale tokens
// are discarded and reported as false.
func (c *Controller) Resolve(token uint64, result blueprint.Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		log.Printf("generation: discarding stale success (token %d, current %d)", token, c.token)
		return false
	}

	c.phase = Succeeded
	c.result = result
	c.message = ""
	return true
}

// Reject records a failed outcome for the given token. Stale tokens are
// discarded and reported as false. The error is translated into the
// user-facing message the Failed state will show.
func (c *Controller) Reject(token uint64, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		log.Printf("generation: discarding stale failure (token %d, current %d): %v", token, c.token, err)
		return false
	}

	c.phase = Failed
	c.result = blueprint.Result{}
	c.message = messageFor(err)
	return true
}

// Reset returns the controller to Idle without invalidating in-flight
// tokens; a later Resolve for the current token still lands.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = Idle
	c.result = blueprint.Result{}
	c.message = ""
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Phase:   c.phase,
		Prompt:  c.prompt,
		Result:  c.result,
		Message: c.message,
	}
}

// messageFor maps an error to the text a user should see. Server-provided
// detail passes through; everything else collapses to the generic fallback,
// with the specifics logged.
func messageFor(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if errors.Is(err, api.ErrNoLayoutImage) {
		log.Printf("generation: service contract violation: %v", err)
		return fallbackMessage
	}
	log.Printf("generation: request failed: %v", err)
	return fallbackMessage
}
