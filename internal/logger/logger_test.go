package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("create logger with console output", func(t *testing.T) {
		buf := &bytes.Buffer{}
		cfg := Config{
			Level:   "info",
			Console: true,
			Output:  buf,
		}

		logger, err := New(cfg)
		require.NoError(t, err)
		zl := logger.GetZerolog()
		defer logger.Close()

		zl.Info().Msg("console message")
		assert.Contains(t, buf.String(), "console message")
	})

	t.Run("create logger with file output", func(t *testing.T) {
		tmpDir := t.TempDir()
		logFile := filepath.Join(tmpDir, "logs", "test.log")

		cfg := Config{
			Level:   "debug",
			File:    logFile,
			Console: false,
		}

		logger, err := New(cfg)
		require.NoError(t, err)
		zl := logger.GetZerolog()

		zl.Info().Msg("test message")
		require.NoError(t, logger.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "test message")
	})

	t.Run("file is appended across runs", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "test.log")

		for _, msg := range []string{"first", "second"} {
			logger, err := New(Config{Level: "info", File: logFile})
			require.NoError(t, err)
			zl := logger.GetZerolog()
			zl.Info().Msg(msg)
			require.NoError(t, logger.Close())
		}

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "first")
		assert.Contains(t, string(data), "second")
	})

	t.Run("create logger with redaction", func(t *testing.T) {
		buf := &bytes.Buffer{}
		cfg := Config{
			Level:     "debug",
			Console:   true,
			Output:    buf,
			Redaction: true,
		}

		logger, err := New(cfg)
		require.NoError(t, err)
		zl := logger.GetZerolog()
		defer logger.Close()
		assert.NotNil(t, logger.redactor)

		zl.Debug().Str("apiKey", "super-secret-key").Msg("authenticating")
		assert.NotContains(t, buf.String(), "super-secret-key")
		assert.Contains(t, buf.String(), "[REDACTED]")
	})

	t.Run("invalid level falls back to warn", func(t *testing.T) {
		logger, err := New(Config{Level: "chatty"})
		require.NoError(t, err)
		defer logger.Close()

		assert.Equal(t, zerolog.WarnLevel, logger.GetZerolog().GetLevel())
	})

	t.Run("installs the global logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger, err := New(Config{Level: "info", Console: true, Output: buf})
		require.NoError(t, err)
		defer logger.Close()

		log.Info().Msg("via global")
		assert.Contains(t, buf.String(), "via global")
	})
}

func TestLoggerMethods(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "warn", Console: true, Output: buf})
	require.NoError(t, err)
	zl := logger.GetZerolog()
	defer logger.Close()

	zl.Debug().Msg("debug message")
	zl.Info().Msg("info message")
	zl.Warn().Msg("warn message")
	zl.Error().Msg("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "warn", cfg.Level)
	assert.True(t, cfg.Console)
	assert.True(t, cfg.Pretty)
	assert.True(t, cfg.Redaction)
}

func TestLoggerWith(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Console: true, Output: buf})
	require.NoError(t, err)
	zl := logger.GetZerolog()
	defer logger.Close()

	child := zl.With().Str("command", "look").Logger()
	child.Info().Msg("child")
	assert.Contains(t, buf.String(), `"command":"look"`)
}
