// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package blueprint holds the domain model shared by the UI and the
// generation pipeline: room parameters, prompt derivation, and the
// normalized result a finished generation produces.
package blueprint

import "strings"

// =============================================================================
// ROOM KINDS
// =============================================================================

// RoomKind identifies one of the room categories the service understands.
type RoomKind int

// Room kinds in canonical order. Prompt derivation and the parameter form
// both follow this order, so the same counts always produce the same prompt.
const (
	Bedroom RoomKind = iota
	Bathroom
	Kitchen
	LivingRoom
	DiningRoom
	Garage
	LaundryRoom
)

// RoomKinds lists every kind in canonical order.
var RoomKinds = []RoomKind{
	Bedroom,
	Bathroom,
	Kitchen,
	LivingRoom,
	DiningRoom,
	Garage,
	LaundryRoom,
}

// roomNouns maps each kind to its singular noun as the service expects it.
// The noun stays singular regardless of count ("2 bedroom", not
// "2 bedrooms"); the backend's parser was trained on that shape.
var roomNouns = map[RoomKind]string{
	Bedroom:     "bedroom",
	Bathroom:    "bathroom",
	Kitchen:     "kitchen",
	LivingRoom:  "living room",
	DiningRoom:  "dining room",
	Garage:      "garage",
	LaundryRoom: "laundry room",
}

// Noun returns the singular room noun used in prompts.
func (k RoomKind) Noun() string { return roomNouns[k] }

// String implements fmt.Stringer.
func (k RoomKind) String() string { return roomNouns[k] }

// =============================================================================
// PARAMETERS
// =============================================================================

// PromptMode selects how the prompt sent to the service is produced.
type PromptMode int

const (
	// ModeParameters derives the prompt from structured room counts.
	ModeParameters PromptMode = iota
	// ModeText sends the user's free text verbatim.
	ModeText
)

// Parameters is the structured input to prompt derivation.
type Parameters struct {
	// Counts holds the requested number of each room kind. Zero and
	// missing entries are equivalent: the kind is omitted from the prompt.
	Counts map[RoomKind]int

	// IncludeEntryway appends "1 entryway" to the room list.
	IncludeEntryway bool
}

// NewParameters returns an empty parameter set.
func NewParameters() Parameters {
	return Parameters{Counts: make(map[RoomKind]int)}
}

// IsEmpty reports whether no rooms are selected at all. An empty set still
// derives a syntactically valid prompt; the service decides what to do with
// it.
func (p Parameters) IsEmpty() bool {
	for _, k := range RoomKinds {
		if p.Counts[k] > 0 {
			return false
		}
	}
	return !p.IncludeEntryway
}

// =============================================================================
// PROMPT DERIVATION
// =============================================================================

// itoa avoids strconv for the tiny counts a house can have. Counts above
// two digits do not occur in practice but still format correctly.
func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + itoa(n%10)
}

// BuildPrompt derives the natural-language prompt from the parameters.
//
// The shape is fixed: "I need a house with " + comma-separated
// "<count> <noun>" segments in canonical room order + ".". Kinds with a
// zero count are skipped. When IncludeEntryway is set, "1 entryway" is the
// final segment. Example:
//
//	I need a house with 2 bedroom, 1 bathroom, 1 kitchen.
func BuildPrompt(p Parameters) string {
	var segments []string
	for _, k := range RoomKinds {
		if n := p.Counts[k]; n > 0 {
			segments = append(segments, itoa(n)+" "+k.Noun())
		}
	}
	if p.IncludeEntryway {
		segments = append(segments, "1 entryway")
	}
	return "I need a house with " + strings.Join(segments, ", ") + "."
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError reports input the user must fix before a request can be
// sent. It never reaches the network.
type ValidationError struct {
	Msg string
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.Msg }

// ValidateText checks free-text input in ModeText. Whitespace-only text is
// rejected locally instead of wasting a round trip.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Msg: "Describe the house you want before generating."}
	}
	return nil
}
