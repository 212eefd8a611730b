// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/planhaus/blueprint-tui/internal/api"
)

// fakeFetcher serves deterministic pages and counts network calls.
type fakeFetcher struct {
	calls atomic.Int64
	// total is the number of entries the fake service has overall.
	total int
	// err, when set, fails every call.
	err error
	// block, when non-nil, is closed to release in-flight calls.
	block chan struct{}
}

func (f *fakeFetcher) ListFloorPlans(ctx context.Context, page, limit int) ([]api.FloorPlan, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}

	start := (page - 1) * limit
	var plans []api.FloorPlan
	for i := start; i < start+limit && i < f.total; i++ {
		plans = append(plans, api.FloorPlan{
			Prompt:         fmt.Sprintf("plan %d", i),
			LayoutImageURL: fmt.Sprintf("https://img/%d.png", i),
		})
	}
	return plans, nil
}

func TestLoadNext_AppendsInOrder(t *testing.T) {
	f := &fakeFetcher{total: 25}
	l := NewLoader(f, 10)

	n, err := l.LoadNext(context.Background())
	if err != nil || n != 10 {
		t.Fatalf("first page: n=%d err=%v, want 10 nil", n, err)
	}
	n, err = l.LoadNext(context.Background())
	if err != nil || n != 10 {
		t.Fatalf("second page: n=%d err=%v, want 10 nil", n, err)
	}

	entries := l.Entries()
	if len(entries) != 20 {
		t.Fatalf("len = %d, want 20", len(entries))
	}
	for i, e := range entries {
		if want := fmt.Sprintf("plan %d", i); e.Prompt != want {
			t.Fatalf("entries[%d].Prompt = %q, want %q (append-only ordering)", i, e.Prompt, want)
		}
	}
	if l.Exhausted() {
		t.Error("full pages must not exhaust the feed")
	}
}

func TestLoadNext_ShortPageExhausts(t *testing.T) {
	f := &fakeFetcher{total: 3}
	l := NewLoader(f, 10)

	n, err := l.LoadNext(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("n=%d err=%v, want 3 nil", n, err)
	}
	if !l.Exhausted() {
		t.Fatal("a page shorter than the limit must exhaust the feed")
	}

	// Further calls are silent no-ops with no network traffic.
	for i := 0; i < 3; i++ {
		n, err = l.LoadNext(context.Background())
		if err != nil || n != 0 {
			t.Fatalf("exhausted LoadNext: n=%d err=%v, want 0 nil", n, err)
		}
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("network calls = %d, want exactly 1", got)
	}
	if l.Len() != 3 {
		t.Errorf("len = %d, want 3", l.Len())
	}
}

func TestLoadNext_EmptyPageExhausts(t *testing.T) {
	f := &fakeFetcher{total: 0}
	l := NewLoader(f, 10)

	n, err := l.LoadNext(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("n=%d err=%v, want 0 nil", n, err)
	}
	if !l.Exhausted() {
		t.Error("an empty page exhausts the feed")
	}
}

func TestLoadNext_ConcurrentCallsSingleFetch(t *testing.T) {
	f := &fakeFetcher{total: 25, block: make(chan struct{})}
	l := NewLoader(f, 10)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.LoadNext(context.Background())
			results <- err
		}()
	}

	// Let one goroutine win the in-flight flag, then release the fetch.
	time.Sleep(50 * time.Millisecond)
	close(f.block)
	wg.Wait()
	close(results)

	var nilErrs, busyErrs int
	for err := range results {
		switch {
		case err == nil:
			nilErrs++
		case errors.Is(err, ErrFetchInProgress):
			busyErrs++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if nilErrs != 1 || busyErrs != 1 {
		t.Errorf("got %d successes and %d busy rejections, want 1 and 1", nilErrs, busyErrs)
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("network calls = %d, want exactly 1", got)
	}
	if l.Len() != 10 {
		t.Errorf("len = %d, want 10", l.Len())
	}
}

func TestLoadNext_FailureLeavesStateUntouched(t *testing.T) {
	f := &fakeFetcher{total: 25}
	l := NewLoader(f, 10)

	if _, err := l.LoadNext(context.Background()); err != nil {
		t.Fatalf("first page failed: %v", err)
	}

	f.err = errors.New("boom")
	if _, err := l.LoadNext(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if l.Len() != 10 {
		t.Errorf("failed fetch must not change entries: len = %d", l.Len())
	}
	if l.Exhausted() {
		t.Error("failed fetch must not exhaust the feed")
	}

	// The retry re-requests the same page.
	f.err = nil
	n, err := l.LoadNext(context.Background())
	if err != nil || n != 10 {
		t.Fatalf("retry: n=%d err=%v, want 10 nil", n, err)
	}
	entries := l.Entries()
	if entries[10].Prompt != "plan 10" {
		t.Errorf("retry fetched the wrong page: got %q", entries[10].Prompt)
	}
}

func TestReset(t *testing.T) {
	f := &fakeFetcher{total: 3}
	l := NewLoader(f, 10)

	if _, err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !l.Exhausted() {
		t.Fatal("setup: feed should be exhausted")
	}

	l.Reset()
	if l.Len() != 0 || l.Exhausted() {
		t.Fatalf("reset must clear entries and the exhausted flag")
	}

	n, err := l.LoadNext(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("after reset: n=%d err=%v, want 3 nil", n, err)
	}
	if got := f.calls.Load(); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}
}
