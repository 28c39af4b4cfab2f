package install

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codepanel/internal/editordetect"
)

type fakeEditor struct{}

func (fakeEditor) EditorID() string                 { return "vscode" }
func (fakeEditor) DisplayName() string              { return "VS Code" }
func (fakeEditor) Command() string                  { return "code" }
func (fakeEditor) Detect(env editordetect.Env) bool { return env["TERM_PROGRAM"] == "vscode" }

type call struct {
	name string
	args []string
}

func newTestInstaller(t *testing.T, calls *[]call, outputs map[string]string, errs map[string]error, withVSIX bool) (*Installer, string) {
	t.Helper()
	registry := editordetect.NewRegistry()
	registry.MustRegister(fakeEditor{})

	dir := t.TempDir()
	vsixPath := filepath.Join(dir, "bundled.vsix")
	if withVSIX {
		if err := os.WriteFile(vsixPath, []byte("vsix"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	run := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{name: name, args: args})
		key := strings.Join(args, " ")
		return []byte(outputs[key]), errs[key]
	}

	flagDir := filepath.Join(dir, "flags")
	return NewInstaller(run, registry, flagDir, vsixPath, nil), flagDir
}

func vscodeEnv() editordetect.Env {
	return editordetect.Env{"TERM_PROGRAM": "vscode"}
}

func TestAttempt_NoEditorDoesNothing(t *testing.T) {
	var calls []call
	inst, _ := newTestInstaller(t, &calls, nil, nil, true)

	if got := inst.Attempt(context.Background(), editordetect.Env{}); got != OutcomeNoEditor {
		t.Fatalf("expected no-editor outcome, got %s", got)
	}
	if len(calls) != 0 {
		t.Fatalf("no commands should run, got %v", calls)
	}
}

func TestAttempt_FlagFileShortCircuits(t *testing.T) {
	var calls []call
	inst, flagDir := newTestInstaller(t, &calls, nil, nil, true)
	if err := os.MkdirAll(flagDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(flagDir, ".vscode_extension_installed"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if got := inst.Attempt(context.Background(), vscodeEnv()); got != OutcomeAlreadyFlagged {
		t.Fatalf("expected already-flagged, got %s", got)
	}
	if len(calls) != 0 {
		t.Fatalf("no commands should run when flagged, got %v", calls)
	}
}

func TestAttempt_AlreadyInstalledCreatesFlag(t *testing.T) {
	var calls []call
	outputs := map[string]string{"--list-extensions": "foo.bar\n" + ExtensionID + "\n"}
	inst, flagDir := newTestInstaller(t, &calls, outputs, nil, true)

	if got := inst.Attempt(context.Background(), vscodeEnv()); got != OutcomeAlreadyInstalled {
		t.Fatalf("expected already-installed, got %s", got)
	}
	if len(calls) != 1 || calls[0].name != "code" {
		t.Fatalf("expected one list call against code, got %v", calls)
	}
	if _, err := os.Stat(filepath.Join(flagDir, ".vscode_extension_installed")); err != nil {
		t.Fatalf("expected flag file: %v", err)
	}
}

func TestAttempt_InstallsBundledVSIX(t *testing.T) {
	var calls []call
	inst, flagDir := newTestInstaller(t, &calls, nil, nil, true)

	if got := inst.Attempt(context.Background(), vscodeEnv()); got != OutcomeInstalled {
		t.Fatalf("expected installed, got %s", got)
	}
	if len(calls) != 2 {
		t.Fatalf("expected list + install calls, got %v", calls)
	}
	install := calls[1]
	if install.args[0] != "--install-extension" || install.args[2] != "--force" {
		t.Fatalf("unexpected install invocation: %v", install.args)
	}
	if _, err := os.Stat(filepath.Join(flagDir, ".vscode_extension_installed")); err != nil {
		t.Fatalf("expected flag file after success: %v", err)
	}
}

func TestAttempt_MissingVSIXFailsWithoutFlag(t *testing.T) {
	var calls []call
	inst, flagDir := newTestInstaller(t, &calls, nil, nil, false)

	if got := inst.Attempt(context.Background(), vscodeEnv()); got != OutcomeFailed {
		t.Fatalf("expected failed, got %s", got)
	}
	if _, err := os.Stat(filepath.Join(flagDir, ".vscode_extension_installed")); !os.IsNotExist(err) {
		t.Fatal("flag must not exist after a failed attempt")
	}
}

func TestAttempt_InstallCommandErrorFailsWithoutFlag(t *testing.T) {
	var calls []call
	errs := map[string]error{}
	inst, flagDir := newTestInstaller(t, &calls, nil, errs, true)
	errs["--install-extension "+filepath.Join(filepath.Dir(flagDir), "bundled.vsix")+" --force"] = errors.New("exit 1")

	if got := inst.Attempt(context.Background(), vscodeEnv()); got != OutcomeFailed {
		t.Fatalf("expected failed, got %s", got)
	}
	if _, err := os.Stat(filepath.Join(flagDir, ".vscode_extension_installed")); !os.IsNotExist(err) {
		t.Fatal("flag must not exist after a failed install")
	}
}
