package debug

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("BasicLogging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "TEST", LogLevelInfo)

		logger.Info("Hello %s", "World")

		output := buf.String()
		assert.Contains(t, output, "[INFO]")
		assert.Contains(t, output, "TEST")
		assert.Contains(t, output, "Hello World")
	})

	t.Run("LogLevels", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", LogLevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Off", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", LogLevelOff)

		logger.Error("should not appear")

		assert.Zero(t, buf.Len())
	})

	t.Run("Named", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "host", LogLevelDebug).Named("window")

		logger.Debug("resized")

		assert.Contains(t, buf.String(), "host.window")
		assert.True(t, logger.IsDebug())
	})

	t.Run("ConditionalLogging", func(t *testing.T) {
		var buf bytes.Buffer
		prev := Default()
		t.Cleanup(func() { SetDefault(prev) })
		SetDefault(New(&buf, "", LogLevelDebug))

		DebugIf(true, "should appear")
		DebugIf(false, "should not appear")

		assert.Contains(t, buf.String(), "should appear")
		assert.NotContains(t, buf.String(), "should not appear")
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "host.log")

	logger, closer, err := NewFileLogger(path, "file", LogLevelInfo)
	require.NoError(t, err)
	logger.Info("to disk")
	require.NoError(t, closer.Close())

	assert.FileExists(t, path)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelTrace, "TRACE"},
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
