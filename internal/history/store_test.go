// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.Record(Entry{
			Prompt:         "I need a house with 1 kitchen.",
			LayoutImageURL: "https://img/layout.png",
			SDImageURL:     "https://img/sd.png",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	// Newest first.
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Fatalf("entries out of order at %d", i)
		}
	}
	if entries[0].SDImageURL != "https://img/sd.png" {
		t.Errorf("SDImageURL = %q", entries[0].SDImageURL)
	}
}

func TestRecordAssignsID(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Record(Entry{Prompt: "p", LayoutImageURL: "https://img/x.png"})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated ID")
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].ID != id {
		t.Errorf("stored ID %q != returned ID %q", entries[0].ID, id)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("zero CreatedAt should be filled in")
	}
}

func TestListLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := s.Record(Entry{Prompt: "p", LayoutImageURL: "https://img/x.png"}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("len = %d, want 2", len(entries))
	}
}

func TestMaxEntriesPrunesOldest(t *testing.T) {
	s := openTestStore(t)
	s.MaxEntries = 3

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Record(Entry{
			Prompt:         "p",
			LayoutImageURL: "https://img/x.png",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3 after pruning", n)
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := entries[len(entries)-1].CreatedAt, base.Add(2*time.Minute); !got.Equal(want) {
		t.Errorf("oldest surviving entry at %v, want %v", got, want)
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Record(Entry{Prompt: "p", LayoutImageURL: "https://img/x.png"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Record(Entry{Prompt: "q", LayoutImageURL: "https://img/y.png"}); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n, _ := s.Count(); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}

	// Deleting again is a no-op.
	if err := s.Delete(id); err != nil {
		t.Errorf("deleting a missing ID should not error: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n, _ := s.Count(); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}
