package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromViper(New())
	require.NoError(t, err)

	assert.Equal(t, "", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 0.0, cfg.Rate)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Sample.Formats)
	assert.False(t, cfg.Sample.RequiredOnly)
	assert.Equal(t, 16, cfg.Sample.MaxDepth)
	assert.NotEmpty(t, cfg.StoreDir)
}

func TestReadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
base_url = "http://localhost:8080"
timeout = "5s"
rate = 2.5

[log]
level = "debug"

[sample]
required_only = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := New()
	require.NoError(t, Read(v, path))
	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2.5, cfg.Rate)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Sample.RequiredOnly)
}

func TestReadExplicitMissingFile(t *testing.T) {
	err := Read(New(), filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("OASTESTER_BASE_URL", "https://api.example.com")
	t.Setenv("OASTESTER_LOG_LEVEL", "error")

	cfg, err := FromViper(New())
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestInvalidValues(t *testing.T) {
	v := New()
	v.Set(KeyTimeout, "0s")
	_, err := FromViper(v)
	assert.Error(t, err)

	v = New()
	v.Set(KeyRate, -1)
	_, err = FromViper(v)
	assert.Error(t, err)
}
