package builtin

import "codepanel/internal/editordetect"

// Registration order is precedence order: windsurf before vscode.
func init() {
	editordetect.EditorDetectorRegistry.MustRegister(windsurfDetector{})
	editordetect.EditorDetectorRegistry.MustRegister(vscodeDetector{})
}
