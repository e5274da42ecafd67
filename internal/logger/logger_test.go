package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	restore, err := Setup(Config{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)
	defer restore()

	L().Info("run.completed", "passed", 3)
	L().Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "run.completed", line["msg"])
	assert.Equal(t, float64(3), line["passed"])
}

func TestSetupRestore(t *testing.T) {
	before := L()
	var buf bytes.Buffer
	restore, err := Setup(Config{Level: "debug", Output: &buf})
	require.NoError(t, err)
	assert.NotSame(t, before, L())
	restore()
	assert.Same(t, before, L())
}

func TestSetupInvalid(t *testing.T) {
	_, err := Setup(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = Setup(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}
