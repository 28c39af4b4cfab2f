// Package localapi serves the bridge's local HTTP surface: command routes
// invoked by the editor client, the panel host page, the websocket hub, and
// the chat-completions proxy.
package localapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"codepanel/internal/agentconfig"
	"codepanel/internal/agentgw"
	"codepanel/internal/editor"
	"codepanel/internal/global"
	"codepanel/internal/historydb"
)

type ConfigStore interface {
	LoadOrInit() (global.GlobalConfig, error)
	Save(cfg global.GlobalConfig) error
}

type AgentConfigStore interface {
	Load() (agentconfig.AgentConfig, error)
	Save(cfg agentconfig.AgentConfig) error
}

type WorkspaceHistory interface {
	List(limit int) ([]historydb.Entry, error)
	Clear() error
}

// CommandRouter is the editor-facing command surface.
type CommandRouter interface {
	StartConversation(ctx context.Context, snap editor.Snapshot) error
	StartConversationWithFileContext(ctx context.Context, snap editor.Snapshot) error
	StartConversationWithSelectionContext(ctx context.Context, snap editor.Snapshot) error
	ProactiveAssist(ctx context.Context, snap editor.Snapshot) error
}

// ChatStreamer proxies one chat request to the agent backend.
type ChatStreamer interface {
	Stream(ctx context.Context, req agentgw.ChatRequest, emit func(agentgw.Chunk) error) error
}

type Deps struct {
	ConfigStore      ConfigStore
	AgentConfigStore AgentConfigStore
	History          WorkspaceHistory
	Router           CommandRouter
	Streamer         ChatStreamer
	Logger           *slog.Logger
}

type Server struct {
	deps Deps
	mux  *http.ServeMux
	hub  *WSHub
	log  *slog.Logger
}

func NewServer(deps Deps, hub *WSHub) *Server {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	if hub == nil {
		hub = NewWSHub(nil, log)
	}
	s := &Server{deps: deps, mux: http.NewServeMux(), hub: hub, log: log}
	s.registerCommandRoutes()
	s.registerConfigRoutes()
	s.registerRecentsRoutes()
	s.registerPanelRoutes()
	s.registerChatRoutes()
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/ws", s.hub.HandleWS)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Hub exposes the websocket hub for event publishing.
func (s *Server) Hub() *WSHub {
	return s.hub
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, map[string]any{"status": "ok"})
}

func respondOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "data": data})
}

func respondError(w http.ResponseWriter, code int, errCode string, msg string) {
	writeJSON(w, code, map[string]any{"ok": false, "error": map[string]any{"code": errCode, "message": msg}})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
