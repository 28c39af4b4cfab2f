// Package editor models the host editor state a command invocation carries,
// plus the channel used to push diagnostics back to the editor client.
package editor

import "strings"

// Document is one open buffer. Path is empty for untitled buffers.
type Document struct {
	Path       string `json:"path"`
	Text       string `json:"text"`
	LanguageID string `json:"languageId"`
	Untitled   bool   `json:"untitled"`
}

// Selection is a 0-based character range as the editor reports it.
type Selection struct {
	StartLine int `json:"startLine"`
	StartChar int `json:"startChar"`
	EndLine   int `json:"endLine"`
	EndChar   int `json:"endChar"`
}

// ActiveEditor describes the focused editor, if any.
type ActiveEditor struct {
	Document     Document  `json:"document"`
	Selection    Selection `json:"selection"`
	SelectedText string    `json:"selectedText"`
	HasSelection bool      `json:"hasSelection"`
}

// Snapshot is the editor state serialized by the thin client with every
// command invocation. It is read-only once received.
type Snapshot struct {
	WorkspaceFolders []string      `json:"workspaceFolders"`
	OpenFiles        []string      `json:"openFiles"`
	Active           *ActiveEditor `json:"activeEditor,omitempty"`
	Column           int           `json:"column"`
}

// FirstWorkspaceFolder returns the root the collector inspects, or "" when
// no folder is open.
func (s Snapshot) FirstWorkspaceFolder() string {
	for _, folder := range s.WorkspaceFolders {
		if strings.TrimSpace(folder) != "" {
			return folder
		}
	}
	return ""
}

// HasActiveEditor reports whether a focused editor was captured.
func (s Snapshot) HasActiveEditor() bool {
	return s.Active != nil
}
