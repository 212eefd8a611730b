// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the blueprint TUI.
//
// It contains rune- and width-aware string helpers used by the view code
// (terminal cells are not bytes, and CJK runes occupy two cells), plus an
// atomic file writer used by configuration persistence.
package util
