// Package application wires the bridge together: stores, websocket hub,
// panel manager, command router, and the local HTTP server.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"codepanel/internal/agentconfig"
	"codepanel/internal/agentgw"
	"codepanel/internal/bridge"
	"codepanel/internal/config"
	"codepanel/internal/db"
	"codepanel/internal/diagnostics"
	"codepanel/internal/global"
	"codepanel/internal/historydb"
	"codepanel/internal/lifecycle"
	"codepanel/internal/localapi"
	"codepanel/internal/logging"
	"codepanel/internal/panel"
	"codepanel/internal/router"
	"codepanel/internal/workspace"
)

const agentSecretFileName = ".codepanel-agent-secret"

type Application struct {
	baseURL string
	dbPath  string
	log     *slog.Logger
	runFn   func(context.Context) error
}

// Start builds the full runtime. The returned application serves until its
// Run context is cancelled.
func Start(_ context.Context, opts StartOptions) (*Application, error) {
	envCfg := config.LoadConfig()

	host := strings.TrimSpace(opts.LocalHost)
	if host == "" {
		host = envCfg.LocalHost
	}
	port := opts.LocalPort
	if port <= 0 {
		port = envCfg.LocalPort
	}
	level := strings.TrimSpace(opts.LogLevel)
	if level == "" {
		level = envCfg.LogLevel
	}
	agentWSURL := strings.TrimSpace(opts.AgentWSURL)
	if agentWSURL == "" {
		agentWSURL = envCfg.AgentWSURL
	}

	configDir := strings.TrimSpace(opts.ConfigDir)
	if configDir == "" {
		dir, err := global.DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		configDir = dir
	}

	cfgStore := global.NewConfigStore(configDir)
	globalCfg, err := cfgStore.LoadOrInit()
	if err != nil {
		return nil, fmt.Errorf("load global config: %w", err)
	}
	if opts.LocalPort <= 0 && globalCfg.LocalPort > 0 {
		port = globalCfg.LocalPort
	}
	if opts.LogLevel == "" && strings.TrimSpace(globalCfg.LogLevel) != "" {
		level = globalCfg.LogLevel
	}

	log := logging.NewLogger(logging.Options{Level: level, Component: "codepanel"})

	dbPath := strings.TrimSpace(opts.DBPath)
	if dbPath == "" {
		dbPath = envCfg.DBPath
	}
	gdb, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	closeDB := func() error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	historyStore, err := historydb.NewStore(gdb)
	if err != nil {
		_ = closeDB()
		return nil, err
	}
	agentStore, err := agentconfig.NewStore(gdb, filepath.Join(configDir, agentSecretFileName))
	if err != nil {
		_ = closeDB()
		return nil, err
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	panelURL := fmt.Sprintf("http://%s/panel", addr)

	hub := localapi.NewWSHub(nil, log)
	panels := panel.NewManager(panel.NewHubFactory(hub, panelURL), log)
	diagnosticsEnabled := func() bool {
		cfg, err := cfgStore.LoadOrInit()
		if err != nil {
			return true
		}
		return cfg.Diagnostics.Enabled
	}
	diags := diagnostics.NewCollection(localapi.NewHubDiagnosticsPublisher(hub), diagnosticsEnabled, log)
	collector := workspace.NewCollector(log)
	cmdRouter := router.New(collector, panels, diags, historyStore, log)
	hub.SetInboundHandler(bridge.NewHandler(cmdRouter, panels, log).Handle)

	streamer := agentgw.NewStreamer(agentgw.RealDialer{}, agentWSURL, log)

	server := localapi.NewServer(localapi.Deps{
		ConfigStore:      cfgStore,
		AgentConfigStore: agentStore,
		History:          historyStore,
		Router:           cmdRouter,
		Streamer:         streamer,
		Logger:           log,
	}, hub)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Handler(),
	}

	mgr := lifecycle.NewManager(log)
	mgr.Go("http-server", func(runCtx context.Context) error {
		go func() {
			<-runCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()
		log.Info("bridge listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	mgr.OnShutdown("close-db", func(context.Context) error {
		return closeDB()
	})
	mgr.OnShutdown("http-server-shutdown", func(context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	return &Application{
		baseURL: "http://" + addr,
		dbPath:  dbPath,
		log:     log,
		runFn: func(ctx context.Context) error {
			return mgr.Run(ctx)
		},
	}, nil
}

func (a *Application) BaseURL() string {
	if a == nil {
		return ""
	}
	return a.baseURL
}

func (a *Application) DBPath() string {
	if a == nil {
		return ""
	}
	return a.dbPath
}

func (a *Application) Logger() *slog.Logger {
	if a == nil {
		return nil
	}
	return a.log
}

// Run serves until ctx is cancelled or a job fails, then tears down.
func (a *Application) Run(ctx context.Context) error {
	if a == nil || a.runFn == nil {
		return nil
	}
	return a.runFn(ctx)
}
