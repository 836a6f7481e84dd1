// File: internal/observability/logger_test.go
package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/SSRQ-SDS-FDS/xmlcustomformatter/internal/config"
)

// syncBuffer adapts a bytes.Buffer to zapcore.WriteSyncer for capturing output.
type syncBuffer struct {
	bytes.Buffer
}

func (s *syncBuffer) Sync() error { return nil }

func TestInitialize(t *testing.T) {
	t.Run("console format with colors", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		cfg := config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "xmlfmt-test",
			Colors:      config.ColorConfig{Info: "green"},
		}
		Initialize(cfg, zapcore.Lock(&buf))

		GetLogger().Info("formatting started")

		output := buf.String()
		assert.Contains(t, output, "INFO", "output should contain the log level")
		assert.Contains(t, output, "formatting started")
		assert.Contains(t, output, colorGreen, "info level should be colorized green")
		assert.Contains(t, output, colorReset)
		assert.Contains(t, output, "xmlfmt-test.", "logger name should carry the service name")
	})

	t.Run("json format", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		cfg := config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "xmlfmt-test",
		}
		Initialize(cfg, zapcore.Lock(&buf))

		GetLogger().Info("json message")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "json message", entry["msg"])
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{Level: "chatty", Format: "json"}, zapcore.Lock(&buf))

		GetLogger().Debug("should be suppressed")
		assert.Empty(t, buf.String())

		GetLogger().Info("should appear")
		assert.Contains(t, buf.String(), "should appear")
	})

	t.Run("second initialization is a no-op", func(t *testing.T) {
		ResetForTest()
		var first, second syncBuffer

		Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.Lock(&first))
		Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.Lock(&second))

		GetLogger().Info("where do I go")
		assert.Contains(t, first.String(), "where do I go")
		assert.Empty(t, second.String())
	})

	t.Run("log file core writes json", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer
		logFile := filepath.Join(t.TempDir(), "xmlfmt.log")

		cfg := config.LoggerConfig{
			Level:   "info",
			Format:  "console",
			LogFile: logFile,
			MaxSize: 1,
		}
		Initialize(cfg, zapcore.Lock(&buf))

		GetLogger().Info("to the file as well")
		Sync()

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"to the file as well"`)
	})
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	ResetForTest()
	logger := GetLogger()
	require.NotNil(t, logger)
	// The no-op logger must swallow writes without panicking.
	logger.Info("into the void")
}
