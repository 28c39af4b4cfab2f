package builtin

import (
	"testing"

	"codepanel/internal/editordetect"
)

func TestDetect_VSCode(t *testing.T) {
	env := editordetect.Env{"TERM_PROGRAM": "vscode"}
	d, ok := editordetect.EditorDetectorRegistry.Detect(env)
	if !ok {
		t.Fatal("expected a match")
	}
	if d.EditorID() != "vscode" || d.Command() != "code" {
		t.Fatalf("unexpected detector: %s/%s", d.EditorID(), d.Command())
	}
}

func TestDetect_WindsurfWinsOverVSCode(t *testing.T) {
	env := editordetect.Env{
		"TERM_PROGRAM":         "vscode",
		"__CFBundleIdentifier": "com.exafunction.windsurf",
	}
	d, ok := editordetect.EditorDetectorRegistry.Detect(env)
	if !ok {
		t.Fatal("expected a match")
	}
	if d.EditorID() != "windsurf" || d.Command() != "surf" {
		t.Fatalf("windsurf should take precedence, got %s", d.EditorID())
	}
}

func TestDetect_WindsurfViaPathAndEnvValues(t *testing.T) {
	byPath := editordetect.Env{"PATH": "/Applications/Windsurf.app/bin:/usr/bin"}
	if d, ok := editordetect.EditorDetectorRegistry.Detect(byPath); !ok || d.EditorID() != "windsurf" {
		t.Fatalf("expected windsurf via PATH, got ok=%v", ok)
	}

	byValue := editordetect.Env{"SOME_VAR": "launched-by-WINDSURF"}
	if d, ok := editordetect.EditorDetectorRegistry.Detect(byValue); !ok || d.EditorID() != "windsurf" {
		t.Fatalf("expected windsurf via env value scan, got ok=%v", ok)
	}
}

func TestDetect_NoEditor(t *testing.T) {
	env := editordetect.Env{"TERM_PROGRAM": "iTerm.app"}
	if _, ok := editordetect.EditorDetectorRegistry.Detect(env); ok {
		t.Fatal("expected no match in a plain terminal")
	}
}
