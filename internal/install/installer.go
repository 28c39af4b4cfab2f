// Package install performs the best-effort, one-time install of the
// companion editor extension. Every failure is logged and non-fatal; the
// attempt repeats on the next run until it succeeds.
package install

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"codepanel/internal/editordetect"
)

// ExtensionID is the marketplace identifier of the companion extension.
const ExtensionID = "openhands.openhands-vscode"

// CommandRunner executes an editor CLI command and returns its combined
// output. Swapped for a fake in tests.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Outcome reports what the attempt did.
type Outcome string

const (
	OutcomeNoEditor         Outcome = "no-editor"
	OutcomeAlreadyFlagged   Outcome = "already-flagged"
	OutcomeAlreadyInstalled Outcome = "already-installed"
	OutcomeInstalled        Outcome = "installed"
	OutcomeFailed           Outcome = "failed"
)

type Installer struct {
	run      CommandRunner
	registry *editordetect.Registry
	flagDir  string
	vsixPath string
	log      *slog.Logger
}

func NewInstaller(run CommandRunner, registry *editordetect.Registry, flagDir, vsixPath string, log *slog.Logger) *Installer {
	if registry == nil {
		registry = editordetect.EditorDetectorRegistry
	}
	if log == nil {
		log = slog.Default()
	}
	return &Installer{
		run:      run,
		registry: registry,
		flagDir:  flagDir,
		vsixPath: vsixPath,
		log:      log,
	}
}

// Attempt checks the environment for a supported editor and installs the
// extension if it is missing. A success flag file prevents repeat work.
func (i *Installer) Attempt(ctx context.Context, env editordetect.Env) Outcome {
	editor, ok := i.registry.Detect(env)
	if !ok {
		return OutcomeNoEditor
	}

	flagFile := filepath.Join(i.flagDir, fmt.Sprintf(".%s_extension_installed", editor.EditorID()))
	if err := os.MkdirAll(i.flagDir, 0o755); err != nil {
		i.log.Debug("could not create extension flag directory", "editor", editor.DisplayName(), "err", err)
		return OutcomeFailed
	}
	if _, err := os.Stat(flagFile); err == nil {
		return OutcomeAlreadyFlagged
	}

	if i.isInstalled(ctx, editor.Command()) {
		i.log.Info("extension is already installed", "editor", editor.DisplayName())
		i.markSuccessful(flagFile, editor.DisplayName())
		return OutcomeAlreadyInstalled
	}

	i.log.Info("first-time setup: installing companion extension", "editor", editor.DisplayName())
	if i.installBundled(ctx, editor.Command()) {
		i.markSuccessful(flagFile, editor.DisplayName())
		return OutcomeInstalled
	}

	i.log.Warn("automatic extension install failed, will retry on next run", "editor", editor.DisplayName())
	return OutcomeFailed
}

func (i *Installer) isInstalled(ctx context.Context, editorCommand string) bool {
	out, err := i.run(ctx, editorCommand, "--list-extensions")
	if err != nil {
		i.log.Debug("could not check installed extensions", "err", err)
		return false
	}
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if strings.TrimSpace(line) == ExtensionID {
			return true
		}
	}
	return false
}

func (i *Installer) installBundled(ctx context.Context, editorCommand string) bool {
	if _, err := os.Stat(i.vsixPath); err != nil {
		i.log.Debug("bundled vsix not found", "path", i.vsixPath, "err", err)
		return false
	}
	out, err := i.run(ctx, editorCommand, "--install-extension", i.vsixPath, "--force")
	if err != nil {
		i.log.Debug("bundled vsix installation failed", "err", err, "output", strings.TrimSpace(string(out)))
		return false
	}
	i.log.Info("bundled extension installed")
	return true
}

func (i *Installer) markSuccessful(flagFile, editorName string) {
	f, err := os.OpenFile(flagFile, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		i.log.Debug("could not create extension success flag file", "editor", editorName, "err", err)
		return
	}
	_ = f.Close()
}

// BundledVSIXPath is the default location of the packaged extension next to
// the executable.
func BundledVSIXPath() string {
	execPath, err := os.Executable()
	if err != nil || execPath == "" {
		return filepath.Clean("openhands-vscode-0.0.1.vsix")
	}
	return filepath.Join(filepath.Dir(execPath), "openhands-vscode-0.0.1.vsix")
}
