package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Storage locations
	DataDir      string
	DatabasePath string
	AssetRoot    string

	// Origins the local UI is allowed to call from
	AllowedOrigins []string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to local defaults under the user config dir.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:     getenv("SERVER_HOST", "127.0.0.1"),
		ServerPort:     getenv("SERVER_PORT", "8090"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	dataDir := os.Getenv("COOKBOOK_DATA_DIR")
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		dataDir = filepath.Join(base, "cookbook")
	}
	cfg.DataDir = dataDir
	cfg.DatabasePath = getenv("COOKBOOK_DB_PATH", filepath.Join(dataDir, "cookbook.db"))
	cfg.AssetRoot = getenv("COOKBOOK_ASSET_ROOT", filepath.Join(dataDir, "images"))

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
