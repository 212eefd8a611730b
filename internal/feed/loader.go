// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed implements incremental loading of the community floor plan
// feed.
//
// The loader is an append-only accumulator over 1-indexed pages. It enforces
// one fetch at a time, advances its cursor only on success, and latches an
// exhausted flag the first time the service returns a short page. Once
// exhausted it never touches the network again until Reset.
package feed

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/planhaus/blueprint-tui/internal/api"
)

// ErrFetchInProgress is returned by LoadNext while an earlier call is still
// running. The caller already has a fetch going; there is nothing to do.
var ErrFetchInProgress = errors.New("feed fetch already in progress")

// Fetcher is the one service capability the loader needs. *api.Client
// satisfies it.
type Fetcher interface {
	ListFloorPlans(ctx context.Context, page, limit int) ([]api.FloorPlan, error)
}

// Loader accumulates feed entries page by page.
type Loader struct {
	fetcher  Fetcher
	pageSize int

	mu        sync.Mutex
	entries   []api.FloorPlan
	nextPage  int
	exhausted bool
	inFlight  bool
}

// NewLoader creates a loader that fetches pageSize entries per call.
func NewLoader(fetcher Fetcher, pageSize int) *Loader {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Loader{
		fetcher:  fetcher,
		pageSize: pageSize,
		nextPage: 1,
	}
}

// LoadNext fetches the next page and appends it, returning how many entries
// arrived.
//
// When the feed is already exhausted it returns (0, nil) without a network
// call. When a fetch is already running it returns ErrFetchInProgress. On
// fetch failure nothing changes: the cursor stays put, no entries are
// appended, and the same page is retried by simply calling LoadNext again.
func (l *Loader) LoadNext(ctx context.Context) (int, error) {
	l.mu.Lock()
	if l.exhausted {
		l.mu.Unlock()
		return 0, nil
	}
	if l.inFlight {
		l.mu.Unlock()
		return 0, ErrFetchInProgress
	}
	l.inFlight = true
	page := l.nextPage
	l.mu.Unlock()

	plans, err := l.fetcher.ListFloorPlans(ctx, page, l.pageSize)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight = false

	if err != nil {
		return 0, err
	}
	if l.nextPage != page {
		// Reset happened while the fetch was running; the page belongs to
		// the discarded sequence.
		log.Printf("feed: discarding page %d fetched across a reset", page)
		return 0, nil
	}

	l.entries = append(l.entries, plans...)
	l.nextPage++
	if len(plans) < l.pageSize {
		l.exhausted = true
		log.Printf("feed: exhausted after page %d (%d total entries)", page, len(l.entries))
	}
	return len(plans), nil
}

// Entries returns a snapshot of everything loaded so far, oldest page first.
func (l *Loader) Entries() []api.FloorPlan {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]api.FloorPlan, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of loaded entries.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Exhausted reports whether the final page has been seen.
func (l *Loader) Exhausted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.exhausted
}

// Loading reports whether a fetch is currently running.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

// Reset discards all entries and starts over from page 1. An in-flight
// fetch keeps running but its result is discarded when it lands.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.nextPage = 1
	l.exhausted = false
}
