// Package protocol defines the wire messages exchanged between the bridge
// process, the thin editor client, and the embedded panel surface.
package protocol

import "encoding/json"

// Message is the websocket envelope. Type is "req", "res" or "event"; Op
// names the operation or event topic.
type Message struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload"`
	Error   *ErrPayload     `json:"error,omitempty"`
}

type ErrPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Event topics published by the controller.
const (
	OpPanelOpen          = "panel.open"
	OpPanelReveal        = "panel.reveal"
	OpPanelPost          = "panel.post"
	OpDiagnosticsPublish = "diagnostics.publish"
)

// Ops accepted from connected clients.
const (
	OpSuggestions   = "suggestions"
	OpPanelDisposed = "panel.disposed"
)

func MustRaw(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
