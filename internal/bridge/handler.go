// Package bridge dispatches inbound websocket messages from the panel and
// editor clients to the owning components.
package bridge

import (
	"encoding/json"
	"log/slog"

	"codepanel/internal/protocol"
)

// SuggestionSink receives suggestion batches relayed by the panel page.
type SuggestionSink interface {
	HandleSuggestions(msg protocol.SuggestionMessage)
}

// PanelLifecycle receives panel close notifications from the editor client.
type PanelLifecycle interface {
	HandleDisposed(panelID string)
}

type Handler struct {
	suggestions SuggestionSink
	panels      PanelLifecycle
	log         *slog.Logger
}

func NewHandler(suggestions SuggestionSink, panels PanelLifecycle, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{suggestions: suggestions, panels: panels, log: log}
}

// Handle routes one inbound message. Requests get a response; events return
// nil. Unknown ops are answered with UNKNOWN_OP rather than silently
// ignored.
func (h *Handler) Handle(msg protocol.Message) *protocol.Message {
	switch msg.Op {
	case protocol.OpSuggestions:
		sm, err := protocol.DecodeSuggestionMessage(msg.Payload)
		if err != nil {
			h.log.Debug("dropping malformed suggestions payload", "err", err)
			return h.errorFor(msg, "BAD_PAYLOAD", err.Error())
		}
		h.suggestions.HandleSuggestions(sm)
		return h.okFor(msg)
	case protocol.OpPanelDisposed:
		var payload struct {
			PanelID string `json:"panel_id"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return h.errorFor(msg, "BAD_PAYLOAD", err.Error())
		}
		h.panels.HandleDisposed(payload.PanelID)
		return h.okFor(msg)
	default:
		h.log.Debug("unsupported inbound op", "op", msg.Op)
		return h.errorFor(msg, "UNKNOWN_OP", "unsupported op")
	}
}

// Events carry no ID and expect no reply.
func (h *Handler) okFor(msg protocol.Message) *protocol.Message {
	if msg.Type == "event" || msg.ID == "" {
		return nil
	}
	return &protocol.Message{ID: msg.ID, Type: "res", Op: msg.Op, Payload: protocol.MustRaw(map[string]any{})}
}

func (h *Handler) errorFor(msg protocol.Message, code, text string) *protocol.Message {
	if msg.Type == "event" || msg.ID == "" {
		return nil
	}
	return &protocol.Message{ID: msg.ID, Type: "res", Op: msg.Op, Error: &protocol.ErrPayload{Code: code, Message: text}}
}
