package localapi

import (
	"net/http"
	"strconv"
	"time"
)

type recentEntry struct {
	Path        string `json:"path"`
	FirstOpened string `json:"first_opened"`
	LastOpened  string `json:"last_opened"`
	OpenCount   int    `json:"open_count"`
}

func (s *Server) registerRecentsRoutes() {
	s.mux.HandleFunc("/api/v1/recents", s.handleRecents)
}

func (s *Server) handleRecents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		entries, err := s.deps.History.List(limit)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "HISTORY_LIST_FAILED", err.Error())
			return
		}
		out := make([]recentEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, recentEntry{
				Path:        e.Path,
				FirstOpened: e.FirstOpened.Format(time.RFC3339),
				LastOpened:  e.LastOpened.Format(time.RFC3339),
				OpenCount:   e.OpenCount,
			})
		}
		respondOK(w, map[string]any{"recents": out})
	case http.MethodDelete:
		if err := s.deps.History.Clear(); err != nil {
			respondError(w, http.StatusInternalServerError, "HISTORY_CLEAR_FAILED", err.Error())
			return
		}
		respondOK(w, map[string]any{})
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}
