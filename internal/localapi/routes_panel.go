package localapi

import (
	"net/http"

	"codepanel/internal/panel"
)

func (s *Server) registerPanelRoutes() {
	s.mux.HandleFunc("/panel", s.handlePanelPage)
}

// handlePanelPage serves the iframe host document the editor's webview loads.
// The websocket URL is derived from the request host so the page connects
// back to whichever port the bridge bound.
func (s *Server) handlePanelPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	wsURL := "ws://" + r.Host + "/ws"
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(panel.PageHTML(wsURL)))
}
