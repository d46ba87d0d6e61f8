package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "cookbook")
	t.Setenv("COOKBOOK_DATA_DIR", dataDir)
	t.Setenv("SERVER_HOST", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("COOKBOOK_DB_PATH", "")
	t.Setenv("COOKBOOK_ASSET_ROOT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, "8090", cfg.ServerPort)
	assert.Equal(t, "127.0.0.1:8090", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "cookbook.db"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(dataDir, "images"), cfg.AssetRoot)

	// The data dir is created on load.
	assert.DirExists(t, cfg.DataDir)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "cookbook")
	t.Setenv("COOKBOOK_DATA_DIR", dataDir)
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:4000")
	t.Setenv("COOKBOOK_DB_PATH", filepath.Join(dataDir, "custom.db"))
	t.Setenv("COOKBOOK_ASSET_ROOT", filepath.Join(dataDir, "assets"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:4000"}, cfg.AllowedOrigins)
	assert.Equal(t, filepath.Join(dataDir, "custom.db"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(dataDir, "assets"), cfg.AssetRoot)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
	assert.True(t, IsTest())
}
