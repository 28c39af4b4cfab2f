package localapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"codepanel/internal/agentgw"
)

func (s *Server) registerChatRoutes() {
	s.mux.HandleFunc("/v1/chat/completions", s.handleChatCompletions)
}

// handleChatCompletions proxies one chat turn to the agent backend as an
// OpenAI-style SSE stream. Only streaming requests are accepted.
func (s *Server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	var req agentgw.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if !req.Stream {
		respondError(w, http.StatusBadRequest, "STREAMING_REQUIRED", "only streaming requests are supported")
		return
	}
	if s.deps.Streamer == nil {
		respondError(w, http.StatusServiceUnavailable, "AGENT_UNAVAILABLE", "agent gateway is not configured")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "STREAMING_UNSUPPORTED", "response writer does not support streaming")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	err := s.deps.Streamer.Stream(r.Context(), req, func(chunk agentgw.Chunk) error {
		data, err := json.Marshal(chunk)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		s.log.Warn("chat stream aborted", "err", err)
		return
	}
	_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
