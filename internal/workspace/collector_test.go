package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"codepanel/internal/editor"
)

func initRepoWithCommit(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("git init failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tracked.txt"), []byte("one\n"), 0o644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree failed: %v", err)
	}
	if _, err := wt.Add("tracked.txt"); err != nil {
		t.Fatalf("git add failed: %v", err)
	}
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("git commit failed: %v", err)
	}
	return dir
}

func TestCollect_GitBranchAndChanges(t *testing.T) {
	dir := initRepoWithCommit(t)
	if err := os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("new\n"), 0o644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}

	c := NewCollector(nil)
	got := c.Collect(context.Background(), editor.Snapshot{
		WorkspaceFolders: []string{dir},
		OpenFiles:        []string{filepath.Join(dir, "tracked.txt")},
	})

	if got.GitStatus == nil {
		t.Fatal("expected git status for a repository workspace")
	}
	if got.GitStatus.Branch != "master" && got.GitStatus.Branch != "main" {
		t.Fatalf("unexpected branch name: %q", got.GitStatus.Branch)
	}
	found := false
	for _, ch := range got.GitStatus.Changes {
		if ch.URI == filepath.Join(dir, "untracked.txt") && ch.Status == "?" {
			found = true
		}
	}
	if !found {
		t.Fatalf("untracked file missing from changes: %+v", got.GitStatus.Changes)
	}
	if len(got.OpenFiles) != 1 {
		t.Fatalf("open files must pass through: %+v", got.OpenFiles)
	}
}

func TestCollect_NoRepository(t *testing.T) {
	dir := t.TempDir()
	c := NewCollector(nil)
	got := c.Collect(context.Background(), editor.Snapshot{WorkspaceFolders: []string{dir}})
	if got.GitStatus != nil {
		t.Fatalf("expected nil git status outside a repository, got %+v", got.GitStatus)
	}
}

func TestCollect_Manifests(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"demo"}`), 0o644); err != nil {
		t.Fatalf("write manifest failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module demo\n"), 0o644); err != nil {
		t.Fatalf("write manifest failed: %v", err)
	}

	c := NewCollector(nil)
	got := c.Collect(context.Background(), editor.Snapshot{WorkspaceFolders: []string{dir}})
	if len(got.Dependencies) != 2 {
		t.Fatalf("expected 2 manifests, got %v", got.Dependencies)
	}
	if got.Dependencies["package.json"] != `{"name":"demo"}` {
		t.Fatalf("manifest content mismatch: %q", got.Dependencies["package.json"])
	}
}

func TestCollect_NoWorkspaceFolder(t *testing.T) {
	c := NewCollector(nil)
	got := c.Collect(context.Background(), editor.Snapshot{OpenFiles: []string{"/somewhere/a.go"}})
	if got.GitStatus != nil || got.Dependencies != nil {
		t.Fatalf("folderless snapshots must only carry open files: %+v", got)
	}
	if len(got.OpenFiles) != 1 {
		t.Fatalf("open files must survive: %+v", got.OpenFiles)
	}
}
