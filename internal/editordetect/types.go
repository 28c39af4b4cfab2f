// Package editordetect figures out which supported editor the process is
// running inside, from the environment the editor's integrated terminal
// exports.
package editordetect

// Env is the environment snapshot a detector inspects.
type Env map[string]string

// Detector is implemented by each editor-specific detector.
type Detector interface {
	// EditorID is the stable identifier, e.g. "vscode".
	EditorID() string
	// DisplayName is the human-readable editor name.
	DisplayName() string
	// Command is the CLI entry point used to manage extensions.
	Command() string
	// Detect reports whether the env looks like this editor's terminal.
	Detect(env Env) bool
}
