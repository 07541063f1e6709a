package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/go-tzclock/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, &config.LoggerConfig{Level: "warn", Format: "json"})

	l.Info("dropped")
	l.Warn("disabling daylight saving time", "zone", "Test/OneRule", "count", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "disabling daylight saving time", rec["msg"])
	assert.Equal(t, "Test/OneRule", rec["zone"])
	assert.EqualValues(t, 1, rec["count"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, &config.LoggerConfig{Level: "debug"})

	l.Debug("solved transitions", "year", 2024)
	l.Error("solve", "error", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "solved transitions")
	assert.Contains(t, out, "year=2024")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "\x1b[", "no color when not a terminal")
}

func TestInit_File(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	path := filepath.Join(t.TempDir(), "tzclock.log")
	l, closeLog, err := Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path})
	require.NoError(t, err)
	assert.Same(t, l, slog.Default())

	slog.Info("hello")
	require.NoError(t, closeLog())
	assert.Error(t, closeLog(), "file is closed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestInit_StderrCloseIsNoop(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	_, closeLog, err := Init(&config.LoggerConfig{OutputPath: "stderr"})
	require.NoError(t, err)
	assert.NoError(t, closeLog())
	assert.NoError(t, closeLog())
}
