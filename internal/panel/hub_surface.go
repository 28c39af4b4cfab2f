package panel

import (
	"encoding/json"

	"github.com/google/uuid"

	"codepanel/internal/protocol"
)

// EventSink fans protocol events out to connected clients by role. The
// localapi websocket hub implements it.
type EventSink interface {
	PublishToEditor(op string, payload map[string]any)
	PublishToPanel(op string, payload map[string]any)
}

// HubFactory builds surfaces backed by the websocket hub: construction and
// reveal are events to the editor client (which owns the actual webview),
// posts are events to the panel page.
type HubFactory struct {
	sink     EventSink
	panelURL string
}

func NewHubFactory(sink EventSink, panelURL string) *HubFactory {
	return &HubFactory{sink: sink, panelURL: panelURL}
}

func (f *HubFactory) New(opts Options) (Surface, error) {
	s := &hubSurface{
		id:   uuid.NewString(),
		sink: f.sink,
	}
	f.sink.PublishToEditor(protocol.OpPanelOpen, map[string]any{
		"panel_id": s.id,
		"url":      f.panelURL,
		"column":   opts.Column,
	})
	return s, nil
}

type hubSurface struct {
	id   string
	sink EventSink
}

func (s *hubSurface) ID() string { return s.id }

func (s *hubSurface) Reveal(column int) {
	s.sink.PublishToEditor(protocol.OpPanelReveal, map[string]any{
		"panel_id": s.id,
		"column":   column,
	})
}

func (s *hubSurface) Post(msg protocol.ContextMessage) error {
	raw, err := protocol.EncodeContextMessage(msg)
	if err != nil {
		return err
	}
	// RawMessage keeps the message an embedded JSON object on the wire; a
	// plain []byte would marshal as base64.
	s.sink.PublishToPanel(protocol.OpPanelPost, map[string]any{
		"panel_id": s.id,
		"message":  json.RawMessage(raw),
	})
	return nil
}
