// Package config derives process configuration from the environment. Values
// are cached briefly so hot paths can re-read without hitting the env on
// every call.
package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Config struct {
	LocalHost      string
	LocalPort      int
	LogLevel       string
	DBPath         string
	AgentWSURL     string
	InstallFlagDir string
}

var (
	cacheTTL   = 10 * time.Second
	nowFunc    = time.Now
	cacheMu    sync.RWMutex
	cachedCfg  Config
	cachedAt   time.Time
	cacheValid bool
)

func LoadConfig() Config {
	cfg := loadFromEnv()
	cacheMu.Lock()
	cachedCfg = cfg
	cachedAt = nowFunc()
	cacheValid = true
	cacheMu.Unlock()
	return cfg
}

func GetConfig() *Config {
	now := nowFunc()
	cacheMu.RLock()
	valid := cacheValid && now.Sub(cachedAt) < cacheTTL
	if valid {
		out := cachedCfg
		cacheMu.RUnlock()
		return &out
	}
	cacheMu.RUnlock()

	cfg := loadFromEnv()
	cacheMu.Lock()
	cachedCfg = cfg
	cachedAt = now
	cacheValid = true
	cacheMu.Unlock()

	out := cfg
	return &out
}

func loadFromEnv() Config {
	host := os.Getenv("CODEPANEL_LOCAL_HOST")
	if host == "" {
		host = "127.0.0.1"
	}

	port := 4621
	if p := os.Getenv("CODEPANEL_LOCAL_PORT"); p != "" {
		if n := atoiOrDefault(p, 4621); n > 0 {
			port = n
		}
	}

	level := os.Getenv("CODEPANEL_LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	dbPath := os.Getenv("CODEPANEL_DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	agentWS := os.Getenv("CODEPANEL_AGENT_WS_URL")
	if agentWS == "" {
		agentWS = "ws://127.0.0.1:3000/ws"
	}

	flagDir := os.Getenv("CODEPANEL_INSTALL_FLAG_DIR")
	if flagDir == "" {
		flagDir = defaultInstallFlagDir()
	}

	return Config{
		LocalHost:      host,
		LocalPort:      port,
		LogLevel:       level,
		DBPath:         dbPath,
		AgentWSURL:     agentWS,
		InstallFlagDir: flagDir,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Clean("codepanel.db")
	}
	return filepath.Join(home, ".config", "codepanel", "codepanel.db")
}

func defaultInstallFlagDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Clean(".openhands")
	}
	return filepath.Join(home, ".openhands")
}

func atoiOrDefault(v string, fallback int) int {
	n := 0
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return fallback
		}
		n = n*10 + int(v[i]-'0')
	}
	if n == 0 {
		return fallback
	}
	return n
}
