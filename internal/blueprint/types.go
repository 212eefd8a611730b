// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package blueprint

import "github.com/planhaus/blueprint-tui/internal/api"

// =============================================================================
// RESULTS
// =============================================================================

// ImageRef is one viewable image of a generation result.
type ImageRef struct {
	// URL locates the image. It is also the key under which load failures
	// are tracked, so two refs with the same URL share failure state.
	URL string
	// Label is the short name shown in the carousel header.
	Label string
	// Description explains what the image depicts.
	Description string
}

// Result is a normalized, successful generation outcome: the prompt that
// produced it plus at least one image.
type Result struct {
	Prompt string
	Images []ImageRef
}

// ResultFromResponse validates a service response and normalizes it into a
// Result. The layout image is required; its absence is a contract violation
// reported as api.ErrNoLayoutImage. The enhanced visualization is optional
// and appended only when present.
func ResultFromResponse(prompt string, resp *api.GenerateResponse) (Result, error) {
	if resp == nil || resp.LayoutImageURL == "" {
		return Result{}, api.ErrNoLayoutImage
	}

	images := []ImageRef{{
		URL:         resp.LayoutImageURL,
		Label:       "Technical layout",
		Description: "Schematic floor plan with room boundaries and labels",
	}}
	if resp.SDImageURL != "" {
		images = append(images, ImageRef{
			URL:         resp.SDImageURL,
			Label:       "Enhanced visualization",
			Description: "Diffusion-rendered interpretation of the layout",
		})
	}

	return Result{Prompt: prompt, Images: images}, nil
}
