// File: history_test.go
// Title: Invocation History Store Tests
// Description: Unit tests for the SQLite-backed history store covering
//              schema creation, recording and recency ordering.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteHistoryStore {
	t.Helper()
	store, err := NewSQLiteHistoryStore(HistoryConfig{
		Path: filepath.Join(t.TempDir(), "history.db"),
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sess := New("user-1", "test")

	base := time.Now().Add(-time.Minute)
	inputs := []string{"help", "greet world", "version"}
	for i, input := range inputs {
		err := store.Record(ctx, &HistoryEntry{
			SessionID: sess.ID,
			UserID:    sess.UserID,
			Input:     input,
			Command:   input,
			Success:   true,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	entries, err := store.Recent(ctx, sess.ID, 2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Input != "version" || entries[1].Input != "greet world" {
		t.Errorf("order = %q, %q", entries[0].Input, entries[1].Input)
	}
}

func TestRecordGeneratesID(t *testing.T) {
	store := newTestStore(t)

	entry := &HistoryEntry{SessionID: "s", Input: "x"}
	if err := store.Record(context.Background(), entry); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if entry.ID == "" {
		t.Error("ID was not generated")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestRecordRejectsNilEntry(t *testing.T) {
	store := newTestStore(t)

	if err := store.Record(context.Background(), nil); err == nil {
		t.Error("expected an error")
	}
}

func TestRecentIsScopedToSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Record(ctx, &HistoryEntry{SessionID: "a", Input: "one"})
	store.Record(ctx, &HistoryEntry{SessionID: "b", Input: "two"})

	entries, err := store.Recent(ctx, "a", 10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Input != "one" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRecentUnknownSession(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.Recent(context.Background(), "missing", 10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}
}

func TestNopHistoryStore(t *testing.T) {
	store := NopHistoryStore{}
	ctx := context.Background()

	if err := store.Record(ctx, &HistoryEntry{}); err != nil {
		t.Errorf("record: %v", err)
	}
	entries, err := store.Recent(ctx, "any", 10)
	if err != nil || entries != nil {
		t.Errorf("recent = (%v, %v)", entries, err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestSessionNew(t *testing.T) {
	a := New("user-1", "repl")
	b := New("user-1", "repl")

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs = %q, %q, want unique non-empty", a.ID, b.ID)
	}
	if a.UserID != "user-1" || a.Channel != "repl" {
		t.Errorf("session = %+v", a)
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}
