package historydb

import (
	"path/filepath"
	"testing"

	"codepanel/internal/db"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("db.Open failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	store, err := NewStore(gdb)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestStore_UpsertCountsRepeatOpens(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.Upsert("/work/alpha"); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}
	if err := store.Upsert("/work/beta"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	entries, err := store.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Path] = e.OpenCount
	}
	if counts["/work/alpha"] != 3 {
		t.Fatalf("expected open_count 3 for alpha, got %d", counts["/work/alpha"])
	}
	if counts["/work/beta"] != 1 {
		t.Fatalf("expected open_count 1 for beta, got %d", counts["/work/beta"])
	}
}

func TestStore_UpsertRejectsEmptyPath(t *testing.T) {
	store := openTestStore(t)
	if err := store.Upsert("   "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestStore_Clear(t *testing.T) {
	store := openTestStore(t)
	if err := store.Upsert("/work/alpha"); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	entries, err := store.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}
