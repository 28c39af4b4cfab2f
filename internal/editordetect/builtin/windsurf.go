// Package builtin registers the supported editor detectors. Windsurf is
// registered first: its terminal also exports TERM_PROGRAM=vscode, so it
// must win over the plain VS Code match.
package builtin

import (
	"strings"

	"codepanel/internal/editordetect"
)

type windsurfDetector struct{}

func (windsurfDetector) EditorID() string    { return "windsurf" }
func (windsurfDetector) DisplayName() string { return "Windsurf" }
func (windsurfDetector) Command() string     { return "surf" }

func (windsurfDetector) Detect(env editordetect.Env) bool {
	if env["__CFBundleIdentifier"] == "com.exafunction.windsurf" {
		return true
	}
	if strings.Contains(strings.ToLower(env["PATH"]), "windsurf") {
		return true
	}
	for _, v := range env {
		if strings.Contains(strings.ToLower(v), "windsurf") {
			return true
		}
	}
	return false
}
