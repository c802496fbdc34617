package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")

	logger := NewLogger("debug", logFile, false)
	logger.Info("store opened", Field{Key: "path", Value: "/tmp/data.json"})
	logger.Debugf("loaded %d activities", 7)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "[INFO] store opened")
	assert.Contains(t, content, "path=/tmp/data.json")
	assert.Contains(t, content, "[DEBUG] loaded 7 activities")
}

func TestLoggerLevelFiltering(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")

	logger := NewLogger("warn", logFile, false)
	logger.Debug("invisible")
	logger.Info("also invisible")
	logger.Warn("visible")
	logger.Error("very visible")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	content := string(data)

	assert.NotContains(t, content, "invisible")
	assert.Contains(t, content, "[WARN] visible")
	assert.Contains(t, content, "[ERROR] very visible")
}

func TestLoggerWith(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")

	logger := NewLogger("info", logFile, false)
	scoped := logger.With(Field{Key: "component", Value: "watcher"})
	scoped.Info("event received")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=watcher")
}

func TestFormatEntryJSON(t *testing.T) {
	entry := LogEntry{
		Timestamp: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		Level:     "INFO",
		Message:   "hello",
		Fields:    map[string]interface{}{"n": 1},
	}

	out, err := formatEntry(entry, FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"message":"hello"`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, LevelInfo, parseLogLevel("bogus"))
}

func TestGlobalLoggingIsNilSafe(t *testing.T) {
	// Must not panic before InitLogger runs
	LogInfo("no logger yet")
	LogWarnf("still no logger: %d", 1)
}
