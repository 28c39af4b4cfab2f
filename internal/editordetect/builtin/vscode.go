package builtin

import "codepanel/internal/editordetect"

type vscodeDetector struct{}

func (vscodeDetector) EditorID() string    { return "vscode" }
func (vscodeDetector) DisplayName() string { return "VS Code" }
func (vscodeDetector) Command() string     { return "code" }

func (vscodeDetector) Detect(env editordetect.Env) bool {
	return env["TERM_PROGRAM"] == "vscode"
}
