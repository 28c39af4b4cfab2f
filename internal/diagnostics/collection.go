package diagnostics

import (
	"log/slog"
	"sync"

	"codepanel/internal/editor"
	"codepanel/internal/protocol"
)

// Source tags every diagnostic this bridge produces.
const Source = "codepanel"

// Collection holds the current diagnostic set per document and mirrors every
// change to the editor client. A new batch for a document replaces the old
// one wholesale; batches never accumulate.
type Collection struct {
	mu        sync.Mutex
	byDoc     map[string][]editor.Diagnostic
	publisher editor.DiagnosticsPublisher
	enabled   func() bool
	log       *slog.Logger
}

// NewCollection builds the bridge. enabled is consulted on every Apply so
// the user's diagnostics toggle takes effect without a restart; nil means
// always on.
func NewCollection(publisher editor.DiagnosticsPublisher, enabled func() bool, log *slog.Logger) *Collection {
	if log == nil {
		log = slog.Default()
	}
	return &Collection{
		byDoc:     map[string][]editor.Diagnostic{},
		publisher: publisher,
		enabled:   enabled,
		log:       log,
	}
}

// Set replaces the full diagnostic set for one document.
func (c *Collection) Set(path string, diags []editor.Diagnostic) {
	c.mu.Lock()
	c.byDoc[path] = append([]editor.Diagnostic(nil), diags...)
	c.mu.Unlock()
	if c.publisher != nil {
		c.publisher.PublishDiagnostics(path, diags)
	}
}

// Get returns the current set for a document.
func (c *Collection) Get(path string) []editor.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]editor.Diagnostic(nil), c.byDoc[path]...)
}

// Apply converts a suggestions batch into diagnostics for the given
// document. An empty path means no document is active; the batch is logged
// and dropped, as is every batch while diagnostics are disabled.
func (c *Collection) Apply(path string, msg protocol.SuggestionMessage) {
	if c.enabled != nil && !c.enabled() {
		c.log.Debug("diagnostics disabled, dropping suggestions", "count", len(msg.Suggestions))
		return
	}
	if path == "" {
		c.log.Debug("suggestions received with no active document, dropping", "count", len(msg.Suggestions))
		return
	}
	diags := make([]editor.Diagnostic, 0, len(msg.Suggestions))
	for _, s := range msg.Suggestions {
		diags = append(diags, editor.Diagnostic{
			Range: editor.Range{
				StartLine: s.Range.StartLine,
				StartChar: s.Range.StartChar,
				EndLine:   s.Range.EndLine,
				EndChar:   s.Range.EndChar,
			},
			Message:  s.Message,
			Severity: MapSeverity(s.Severity),
			Source:   Source,
		})
	}
	c.Set(path, diags)
}
