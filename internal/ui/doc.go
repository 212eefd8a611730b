// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea application for the blueprint TUI.
//
// The app is organized into three tabs:
//
//   - Generator: a structured room-count form (or free-text description)
//     that submits generation requests and shows the result carousel.
//   - Discover: the community feed of generated floor plans, loaded one
//     page at a time as the user scrolls.
//   - History: locally archived generations.
//
// State that must survive out-of-order network responses lives outside the
// tea.Model tree: the generation.Controller orders submissions and the
// feed.Loader serializes page fetches. The models here translate key
// presses into calls on those and render their snapshots.
package ui
