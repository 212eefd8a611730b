// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// WIRE TYPES
// =============================================================================

// GenerateRequest is the body of a POST /generate call.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse is the success body of a POST /generate call.
//
// LayoutImageURL is the technical floor plan render and is required; a 2xx
// response without it violates the service contract. SDImageURL is the
// optional diffusion-enhanced visualization.
type GenerateResponse struct {
	LayoutImageURL string `json:"layout_image_url"`
	SDImageURL     string `json:"sd_image_url,omitempty"`
}

// FloorPlan is one entry of the community feed returned by GET /floorplans.
type FloorPlan struct {
	Prompt         string `json:"prompt"`
	LayoutImageURL string `json:"layout_image_url"`
	SDImageURL     string `json:"sd_image_url,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// errorBody is the shape of the service's error responses. FastAPI-style
// backends put a human-readable message under "detail".
type errorBody struct {
	Detail string `json:"detail"`
}
