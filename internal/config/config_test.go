package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "tipline.db", cfg.Database.Path)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, 2*time.Minute, cfg.GeminiTimeout())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tipline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
database:
  path: /data/tipline.db
gemini:
  model: gemini-2.5-pro
  timeout_seconds: 60
log:
  level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/data/tipline.db", cfg.Database.Path)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, time.Minute, cfg.GeminiTimeout())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: valid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tipline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0644))

	t.Setenv("TIPLINE_ADDR", ":7070")
	t.Setenv("TIPLINE_GEMINI_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
}

func TestSpecificEnvKeyWinsOverGeneric(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "generic")
	t.Setenv("TIPLINE_GEMINI_API_KEY", "specific")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "specific", cfg.Gemini.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate())

	cfg.Gemini.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.Database.Path = ""
	assert.Error(t, cfg.Validate())
}
