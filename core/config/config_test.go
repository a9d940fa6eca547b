package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 600, cfg.Server.PrepareTimeoutSeconds)
	assert.Equal(t, "https://boardgamegeek.com/xmlapi/", cfg.BGG.BaseURL)
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.True(t, cfg.Pipeline.ArchiveRaw)
	assert.Equal(t, "collectionData.json", cfg.Storage.ObjectKey)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Cache.Enabled())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("BGG_USERNAME", "alice")
	t.Setenv("PIPELINE_CONCURRENCY", "8")
	t.Setenv("DATABASE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.BGG.Username)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CACHE_URL=redis://localhost:6379/0\nSTORAGE_UPLOAD=false\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("CACHE_URL")
		os.Unsetenv("STORAGE_UPLOAD")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.True(t, cfg.Cache.Enabled())
	assert.False(t, cfg.Storage.Upload)
}
