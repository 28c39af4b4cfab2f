package localapi

import (
	"codepanel/internal/editor"
	"codepanel/internal/protocol"
)

// HubDiagnosticsPublisher pushes diagnostic batches to the editor client
// over the websocket hub. Each publish carries the document's full set; the
// editor replaces whatever it held before.
type HubDiagnosticsPublisher struct {
	hub *WSHub
}

func NewHubDiagnosticsPublisher(hub *WSHub) *HubDiagnosticsPublisher {
	return &HubDiagnosticsPublisher{hub: hub}
}

func (p *HubDiagnosticsPublisher) PublishDiagnostics(path string, diags []editor.Diagnostic) {
	if diags == nil {
		diags = []editor.Diagnostic{}
	}
	p.hub.PublishToEditor(protocol.OpDiagnosticsPublish, map[string]any{
		"path":        path,
		"diagnostics": diags,
	})
}
