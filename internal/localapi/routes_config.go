package localapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type agentConfigResponse struct {
	Endpoint  string `json:"endpoint"`
	Model     string `json:"model"`
	APIKeySet bool   `json:"api_key_set"`
}

type configResponse struct {
	LocalPort          int                 `json:"local_port"`
	LogLevel           string              `json:"log_level"`
	DiagnosticsEnabled bool                `json:"diagnostics_enabled"`
	Agent              agentConfigResponse `json:"agent"`
}

func (s *Server) registerConfigRoutes() {
	s.mux.HandleFunc("/api/v1/config", s.handleConfig)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleConfigGet(w)
	case http.MethodPatch:
		s.handleConfigPatch(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

func (s *Server) handleConfigGet(w http.ResponseWriter) {
	cfg, err := s.deps.ConfigStore.LoadOrInit()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "CONFIG_LOAD_FAILED", err.Error())
		return
	}
	agent := agentConfigResponse{}
	if s.deps.AgentConfigStore != nil {
		agentCfg, err := s.deps.AgentConfigStore.Load()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "CONFIG_LOAD_FAILED", err.Error())
			return
		}
		agent = agentConfigResponse{Endpoint: agentCfg.Endpoint, Model: agentCfg.Model, APIKeySet: agentCfg.APIKeySet}
	}
	respondOK(w, configResponse{
		LocalPort:          cfg.LocalPort,
		LogLevel:           cfg.LogLevel,
		DiagnosticsEnabled: cfg.Diagnostics.Enabled,
		Agent:              agent,
	})
}

func (s *Server) handleConfigPatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LocalPort          *int    `json:"local_port"`
		LogLevel           *string `json:"log_level"`
		DiagnosticsEnabled *bool   `json:"diagnostics_enabled"`
		Agent              *struct {
			Endpoint *string `json:"endpoint"`
			Model    *string `json:"model"`
			APIKey   *string `json:"api_key"`
		} `json:"agent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	cfg, err := s.deps.ConfigStore.LoadOrInit()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "CONFIG_LOAD_FAILED", err.Error())
		return
	}
	if req.LocalPort != nil {
		cfg.LocalPort = *req.LocalPort
	}
	if req.LogLevel != nil {
		cfg.LogLevel = strings.TrimSpace(*req.LogLevel)
	}
	if req.DiagnosticsEnabled != nil {
		cfg.Diagnostics.Enabled = *req.DiagnosticsEnabled
	}
	if err := s.deps.ConfigStore.Save(cfg); err != nil {
		respondError(w, http.StatusInternalServerError, "CONFIG_SAVE_FAILED", err.Error())
		return
	}

	agent := agentConfigResponse{}
	if s.deps.AgentConfigStore != nil {
		agentCfg, err := s.deps.AgentConfigStore.Load()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "CONFIG_SAVE_FAILED", err.Error())
			return
		}
		if req.Agent != nil {
			if req.Agent.Endpoint != nil {
				agentCfg.Endpoint = strings.TrimSpace(*req.Agent.Endpoint)
			}
			if req.Agent.Model != nil {
				agentCfg.Model = strings.TrimSpace(*req.Agent.Model)
			}
			if req.Agent.APIKey != nil {
				agentCfg.APIKey = strings.TrimSpace(*req.Agent.APIKey)
				agentCfg.APIKeySet = agentCfg.APIKey != ""
			}
			if err := s.deps.AgentConfigStore.Save(agentCfg); err != nil {
				respondError(w, http.StatusInternalServerError, "CONFIG_SAVE_FAILED", err.Error())
				return
			}
		}
		agent = agentConfigResponse{Endpoint: agentCfg.Endpoint, Model: agentCfg.Model, APIKeySet: agentCfg.APIKeySet}
	} else if req.Agent != nil {
		respondError(w, http.StatusInternalServerError, "CONFIG_SAVE_FAILED", "agent config store is unavailable")
		return
	}

	respondOK(w, configResponse{
		LocalPort:          cfg.LocalPort,
		LogLevel:           cfg.LogLevel,
		DiagnosticsEnabled: cfg.Diagnostics.Enabled,
		Agent:              agent,
	})
}
