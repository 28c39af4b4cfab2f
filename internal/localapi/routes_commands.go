package localapi

import (
	"context"
	"encoding/json"
	"net/http"

	"codepanel/internal/editor"
)

// Host command names, matching the editor's command palette entries.
const (
	CommandStartConversation         = "start-conversation"
	CommandStartWithFileContext      = "start-conversation-with-file-context"
	CommandStartWithSelectionContext = "start-conversation-with-selection-context"
	CommandProactiveAssist           = "proactive-assist"
)

func (s *Server) registerCommandRoutes() {
	commands := map[string]func(context.Context, editor.Snapshot) error{
		CommandStartConversation:         s.deps.Router.StartConversation,
		CommandStartWithFileContext:      s.deps.Router.StartConversationWithFileContext,
		CommandStartWithSelectionContext: s.deps.Router.StartConversationWithSelectionContext,
		CommandProactiveAssist:           s.deps.Router.ProactiveAssist,
	}
	for name, handler := range commands {
		s.mux.HandleFunc("/api/v1/commands/"+name, s.handleCommand(name, handler))
	}
}

// handleCommand is fire-and-forget from the editor's perspective: routing
// failures are logged, never surfaced as errors to the invoking host.
func (s *Server) handleCommand(name string, handler func(context.Context, editor.Snapshot) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		var snap editor.Snapshot
		if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
			return
		}
		if err := handler(r.Context(), snap); err != nil {
			s.log.Warn("command failed", "command", name, "err", err)
		}
		respondOK(w, map[string]any{})
	}
}
