package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"":        log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"verbose": log.WarnLevel,
	}
	for input, expected := range tests {
		assert.Equal(t, expected, parseLogLevel(input), "level %q", input)
	}
}

func TestConfigure_ExplicitLevelWinsOverEnvironment(t *testing.T) {
	t.Setenv("SLADE_LOG_LEVEL", "error")

	require.NoError(t, Configure("debug", ""))
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())

	require.NoError(t, Configure("", ""))
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())
}

func TestConfigure_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slade.log")
	require.NoError(t, Configure("info", path))
	t.Cleanup(func() { _ = Configure("", "") })
	assert.FileExists(t, path)

	require.Error(t, Configure("info", filepath.Join(t.TempDir(), "missing", "slade.log")))
}

func TestConfigure_LogFileReceivesComponentLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slade.log")
	require.NoError(t, Configure("debug", path))
	t.Cleanup(func() { _ = Configure("", "") })

	Warn("global message")
	NewStyledLogger("Messaging").Warn("component message")
	Info("info message", "name", "world")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "global message")
	assert.Contains(t, string(content), "component message")
	assert.Contains(t, string(content), "info message")
}

func TestConfigure_ClosesPreviousLogFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Configure("info", filepath.Join(dir, "first.log")))
	first := logFile
	require.NotNil(t, first)

	require.NoError(t, Configure("info", filepath.Join(dir, "second.log")))
	_, err := first.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)

	require.NoError(t, Configure("", ""))
	assert.Nil(t, logFile)
	assert.Equal(t, os.Stderr, destination)
}

func TestConfigure_LevelFiltersLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slade.log")
	require.NoError(t, Configure("error", path))
	t.Cleanup(func() { _ = Configure("", "") })

	Debug("hidden")
	Warn("also hidden")
	Error("shown", "error", "boom")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), "shown")
}
