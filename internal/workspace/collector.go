package workspace

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"codepanel/internal/editor"
)

// Collector builds Context snapshots. Collection is best-effort: a failing
// sub-step nulls its field and logs, it never aborts the whole collection.
type Collector struct {
	log *slog.Logger
}

func NewCollector(log *slog.Logger) *Collector {
	if log == nil {
		log = slog.Default()
	}
	return &Collector{log: log}
}

// Collect reads the editor snapshot plus the first workspace folder's git
// state and dependency manifests. It has no side effects beyond reads.
func (c *Collector) Collect(ctx context.Context, snap editor.Snapshot) Context {
	out := Context{OpenFiles: append([]string(nil), snap.OpenFiles...)}
	if out.OpenFiles == nil {
		out.OpenFiles = []string{}
	}

	root := snap.FirstWorkspaceFolder()
	if root == "" {
		c.log.Debug("no workspace folder open, skipping git and manifest scan")
		return out
	}

	out.GitStatus = c.collectGit(root)
	out.Dependencies = c.collectManifests(root)
	return out
}

func (c *Collector) collectGit(root string) *GitStatus {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		c.log.Debug("no git repository found", "root", root, "err", err)
		return nil
	}

	status := &GitStatus{Branch: DetachedBranch, Changes: []Change{}}
	head, err := repo.Head()
	if err != nil {
		c.log.Debug("failed to resolve HEAD", "root", root, "err", err)
	} else if head.Name().IsBranch() {
		status.Branch = head.Name().Short()
	}

	wt, err := repo.Worktree()
	if err != nil {
		c.log.Debug("failed to open worktree", "root", root, "err", err)
		return status
	}
	st, err := wt.Status()
	if err != nil {
		c.log.Debug("failed to read worktree status", "root", root, "err", err)
		return status
	}
	for path, fs := range st {
		code := fs.Worktree
		if fs.Staging != git.Unmodified && fs.Staging != git.Untracked {
			code = fs.Staging
		}
		if code == git.Unmodified {
			continue
		}
		status.Changes = append(status.Changes, Change{
			URI:    filepath.Join(root, path),
			Status: string(rune(code)),
		})
	}
	return status
}

func (c *Collector) collectManifests(root string) map[string]string {
	var deps map[string]string
	for _, name := range ManifestFilenames {
		path := filepath.Join(root, name)
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				c.log.Debug("failed to read manifest", "path", path, "err", err)
			}
			continue
		}
		if deps == nil {
			deps = map[string]string{}
		}
		deps[name] = string(b)
	}
	return deps
}
