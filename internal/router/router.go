// Package router dispatches editor-invoked commands to the panel and relays
// suggestion batches from the panel into editor diagnostics.
package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"codepanel/internal/diagnostics"
	"codepanel/internal/editor"
	"codepanel/internal/panel"
	"codepanel/internal/prompt"
	"codepanel/internal/protocol"
	"codepanel/internal/workspace"
)

// Collector builds the workspace snapshot for an invocation.
type Collector interface {
	Collect(ctx context.Context, snap editor.Snapshot) workspace.Context
}

// Panels is the get-or-create entry point of the panel manager.
type Panels interface {
	GetOrCreate(column int) (panel.Surface, bool, error)
}

// Recents records workspace roots as they are used. Optional.
type Recents interface {
	Upsert(path string) error
}

type Router struct {
	collector Collector
	panels    Panels
	diags     *diagnostics.Collection
	recents   Recents
	log       *slog.Logger

	mu        sync.Mutex
	activeDoc string
}

func New(collector Collector, panels Panels, diags *diagnostics.Collection, recents Recents, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		collector: collector,
		panels:    panels,
		diags:     diags,
		recents:   recents,
		log:       log,
	}
}

// StartConversation posts the current workspace context and nothing else.
func (r *Router) StartConversation(ctx context.Context, snap editor.Snapshot) error {
	surface, err := r.prepare(ctx, snap)
	if err != nil {
		return err
	}
	return r.postWorkspaceContext(ctx, surface, snap)
}

// StartConversationWithFileContext posts the workspace context, then either
// a formatted prompt for a non-empty untitled buffer or the saved file's
// path. Without an active editor it stops after the workspace context.
func (r *Router) StartConversationWithFileContext(ctx context.Context, snap editor.Snapshot) error {
	surface, err := r.prepare(ctx, snap)
	if err != nil {
		return err
	}
	if err := r.postWorkspaceContext(ctx, surface, snap); err != nil {
		return err
	}
	if snap.Active == nil {
		return nil
	}

	doc := snap.Active.Document
	if doc.Untitled && strings.TrimSpace(doc.Text) != "" {
		text := prompt.FormatFileContext("", doc.Text, doc.LanguageID)
		return surface.Post(protocol.TextContextMessage{Context: text})
	}
	// Saved files travel by path; the frontend fetches the content itself.
	return surface.Post(protocol.FileMessage{File: doc.Path})
}

// StartConversationWithSelectionContext posts the workspace context, then a
// formatted prompt for the selection. Without an active editor or with an
// empty selection it stops after the workspace context.
func (r *Router) StartConversationWithSelectionContext(ctx context.Context, snap editor.Snapshot) error {
	surface, err := r.prepare(ctx, snap)
	if err != nil {
		return err
	}
	if err := r.postWorkspaceContext(ctx, surface, snap); err != nil {
		return err
	}
	if snap.Active == nil || !snap.Active.HasSelection {
		return nil
	}

	doc := snap.Active.Document
	path := doc.Path
	if doc.Untitled {
		path = ""
	}
	sel := snap.Active.Selection
	text := prompt.FormatSelectionContext(path, snap.Active.SelectedText, sel.StartLine+1, sel.EndLine+1, doc.LanguageID)
	return surface.Post(protocol.TextContextMessage{Context: text})
}

// ProactiveAssist posts the whole active document for review. Without an
// active editor it does nothing at all: no panel, no context. The other
// three commands still post the workspace context in that case.
func (r *Router) ProactiveAssist(ctx context.Context, snap editor.Snapshot) error {
	if snap.Active == nil {
		return nil
	}
	surface, err := r.prepare(ctx, snap)
	if err != nil {
		return err
	}
	return surface.Post(protocol.ProactiveAssistMessage{Code: snap.Active.Document.Text})
}

// HandleSuggestions applies a suggestions batch to the currently active
// document. The batch replaces that document's previous diagnostics.
func (r *Router) HandleSuggestions(msg protocol.SuggestionMessage) {
	r.mu.Lock()
	doc := r.activeDoc
	r.mu.Unlock()
	r.diags.Apply(doc, msg)
}

// prepare obtains the panel and records the invocation's editor state. The
// suggestion handler itself is bound once at wiring time.
func (r *Router) prepare(ctx context.Context, snap editor.Snapshot) (panel.Surface, error) {
	surface, created, err := r.panels.GetOrCreate(snap.Column)
	if err != nil {
		return nil, err
	}
	if created {
		r.log.Info("panel opened", "panel_id", surface.ID())
	}

	r.mu.Lock()
	r.activeDoc = ""
	if snap.Active != nil && !snap.Active.Document.Untitled {
		r.activeDoc = snap.Active.Document.Path
	}
	r.mu.Unlock()

	if r.recents != nil {
		if root := snap.FirstWorkspaceFolder(); root != "" {
			if err := r.recents.Upsert(root); err != nil {
				r.log.Debug("failed to record recent workspace", "root", root, "err", err)
			}
		}
	}
	return surface, nil
}

func (r *Router) postWorkspaceContext(ctx context.Context, surface panel.Surface, snap editor.Snapshot) error {
	wc := r.collector.Collect(ctx, snap)
	raw, err := json.Marshal(wc)
	if err != nil {
		return err
	}
	return surface.Post(protocol.WorkspaceContextMessage{Context: raw})
}
