package localapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"codepanel/internal/protocol"
)

// Client roles. The editor client owns webview lifecycle and diagnostics;
// the panel page relays context messages into the iframe.
const (
	RoleEditor = "editor"
	RolePanel  = "panel"
)

// InboundHandler processes a message from a connected client and returns an
// optional response to write back on the same connection.
type InboundHandler func(msg protocol.Message) *protocol.Message

type WSHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]string
	seq     atomic.Uint64
	inbound InboundHandler
	log     *slog.Logger
}

func NewWSHub(inbound InboundHandler, log *slog.Logger) *WSHub {
	if log == nil {
		log = slog.Default()
	}
	return &WSHub{clients: map[*websocket.Conn]string{}, inbound: inbound, log: log}
}

// SetInboundHandler installs the message handler. Must be called before the
// first client connects.
func (h *WSHub) SetInboundHandler(handler InboundHandler) {
	h.inbound = handler
}

func (h *WSHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role != RoleEditor {
		role = RolePanel
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.clients[conn] = role
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}()

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debug("dropping malformed ws message", "role", role, "err", err)
			continue
		}
		if h.inbound == nil {
			continue
		}
		if resp := h.inbound(msg); resp != nil {
			out, err := json.Marshal(resp)
			if err != nil {
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
			_ = conn.Write(writeCtx, websocket.MessageText, out)
			cancel()
		}
	}
}

// PublishToEditor sends an event to every connected editor client.
func (h *WSHub) PublishToEditor(op string, payload map[string]any) {
	h.publish(RoleEditor, op, payload)
}

// PublishToPanel sends an event to every connected panel page.
func (h *WSHub) PublishToPanel(op string, payload map[string]any) {
	h.publish(RolePanel, op, payload)
}

func (h *WSHub) publish(role, op string, payload map[string]any) {
	evt := protocol.Message{
		ID:      fmt.Sprintf("evt_%d", h.seq.Add(1)),
		Type:    "event",
		Op:      op,
		Payload: protocol.MustRaw(payload),
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c, r := range h.clients {
		if r == role {
			conns = append(conns, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		_ = c.Write(ctx, websocket.MessageText, msg)
		cancel()
	}
}
