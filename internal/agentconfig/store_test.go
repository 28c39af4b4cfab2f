package agentconfig

import (
	"path/filepath"
	"testing"

	"codepanel/internal/db"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	gdb, err := db.Open(filepath.Join(dir, "agent.db"))
	if err != nil {
		t.Fatalf("db.Open failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	store, err := NewStore(gdb, filepath.Join(dir, "secret.key"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := AgentConfig{Endpoint: "ws://127.0.0.1:9000/ws", Model: "openhands-agent", APIKey: "sk-secret"}
	if err := store.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.Endpoint != in.Endpoint || out.Model != in.Model {
		t.Fatalf("unexpected config: %+v", out)
	}
	if !out.APIKeySet || out.APIKey != "sk-secret" {
		t.Fatalf("api key should decrypt back, got %+v", out)
	}
}

func TestStore_SaveWithoutKeyKeepsExistingKey(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save(AgentConfig{Endpoint: "ws://a", APIKey: "sk-1"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(AgentConfig{Endpoint: "ws://b"}); err != nil {
		t.Fatal(err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if out.Endpoint != "ws://b" {
		t.Fatalf("endpoint should update, got %s", out.Endpoint)
	}
	if out.APIKey != "sk-1" {
		t.Fatalf("blank api key must not clobber the stored one, got %q", out.APIKey)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	store := openTestStore(t)
	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.APIKeySet || out.Endpoint != "" || out.Model != "" {
		t.Fatalf("expected empty config, got %+v", out)
	}
}
