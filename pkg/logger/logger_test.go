package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"FocusDesk/config"
)

func TestParseZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseZapLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseZapLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseZapLevel("Error"))
	assert.Equal(t, zapcore.InfoLevel, parseZapLevel("verbose"))
}

func TestToHlogLevel(t *testing.T) {
	assert.Equal(t, hlog.LevelDebug, toHlogLevel(zapcore.DebugLevel))
	assert.Equal(t, hlog.LevelError, toHlogLevel(zapcore.ErrorLevel))
	assert.Equal(t, hlog.LevelInfo, toHlogLevel(zapcore.DPanicLevel))
}

func TestNamedBeforeInit(t *testing.T) {
	// 未初始化时 Logger 为 Nop，不应 panic
	assert.NotPanics(t, func() {
		Named("test").Info("hello")
	})
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desk.log")
	cfg := &config.Config{
		ServiceName:      "focusdesk",
		Environment:      "test",
		LoggerLevel:      "warn",
		LoggerFormat:     "json",
		LoggerOutputPath: path,
	}

	l, closer, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, closer)

	l.Info("dropped below level")
	l.Warn("timer persisted late")
	require.NoError(t, l.Sync())
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry), "exactly one JSON line expected, got %q", raw)
	assert.Equal(t, "timer persisted late", entry["msg"])
	assert.Equal(t, "focusdesk", entry["service"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestNewRejectsUnwritablePath(t *testing.T) {
	cfg := &config.Config{LoggerOutputPath: filepath.Join(t.TempDir(), "missing", "desk.log")}

	_, _, err := New(cfg)
	assert.Error(t, err)
}
