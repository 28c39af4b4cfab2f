// Package diagnostics turns suggestion batches from the panel into editor
// diagnostics.
package diagnostics

import "codepanel/internal/editor"

// MapSeverity maps a suggestion severity keyword to a diagnostic level.
// Matching is case-sensitive; anything unrecognized becomes a hint.
func MapSeverity(s string) editor.DiagnosticSeverity {
	switch s {
	case "error":
		return editor.SeverityError
	case "warning":
		return editor.SeverityWarning
	case "info":
		return editor.SeverityInformation
	case "hint":
		return editor.SeverityHint
	default:
		return editor.SeverityHint
	}
}
