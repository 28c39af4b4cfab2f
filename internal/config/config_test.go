package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CODEPANEL_LOCAL_HOST", "")
	t.Setenv("CODEPANEL_LOCAL_PORT", "")
	t.Setenv("CODEPANEL_LOG_LEVEL", "")
	t.Setenv("CODEPANEL_AGENT_WS_URL", "")

	cfg := LoadConfig()
	if cfg.LocalHost != "127.0.0.1" {
		t.Fatalf("unexpected local host: %s", cfg.LocalHost)
	}
	if cfg.LocalPort != 4621 {
		t.Fatalf("unexpected local port: %d", cfg.LocalPort)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.AgentWSURL != "ws://127.0.0.1:3000/ws" {
		t.Fatalf("unexpected agent ws url: %s", cfg.AgentWSURL)
	}
	if cfg.DBPath == "" {
		t.Fatal("db path should never be empty")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("CODEPANEL_LOCAL_HOST", "0.0.0.0")
	t.Setenv("CODEPANEL_LOCAL_PORT", "9100")
	t.Setenv("CODEPANEL_LOG_LEVEL", "debug")
	t.Setenv("CODEPANEL_DB_PATH", "/tmp/cp.db")
	t.Setenv("CODEPANEL_AGENT_WS_URL", "ws://127.0.0.1:9000/ws")

	cfg := LoadConfig()
	if cfg.LocalHost != "0.0.0.0" || cfg.LocalPort != 9100 {
		t.Fatalf("unexpected listen config: %s:%d", cfg.LocalHost, cfg.LocalPort)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.DBPath != "/tmp/cp.db" {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.AgentWSURL != "ws://127.0.0.1:9000/ws" {
		t.Fatalf("unexpected agent ws url: %s", cfg.AgentWSURL)
	}
}

func TestLoadConfig_MalformedPortFallsBack(t *testing.T) {
	t.Setenv("CODEPANEL_LOCAL_PORT", "not-a-port")
	cfg := LoadConfig()
	if cfg.LocalPort != 4621 {
		t.Fatalf("malformed port should fall back, got %d", cfg.LocalPort)
	}
}

func TestGetConfig_UsesCacheWithinTTL(t *testing.T) {
	base := time.Now()
	nowFunc = func() time.Time { return base }
	defer func() { nowFunc = time.Now }()

	t.Setenv("CODEPANEL_LOCAL_HOST", "10.0.0.1")
	LoadConfig()

	t.Setenv("CODEPANEL_LOCAL_HOST", "10.0.0.2")
	if got := GetConfig().LocalHost; got != "10.0.0.1" {
		t.Fatalf("expected cached host, got %s", got)
	}

	nowFunc = func() time.Time { return base.Add(cacheTTL + time.Second) }
	if got := GetConfig().LocalHost; got != "10.0.0.2" {
		t.Fatalf("expected refreshed host, got %s", got)
	}
}
