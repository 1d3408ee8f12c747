package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
		err  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{" WARN ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"chatty", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", zap.String("mode", "focus"))
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "focus", entry["mode"])
	assert.Contains(t, entry, "time")
}

func TestNewFile_AppendsAndCloses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pomo.log")

	logger, closeFn, err := NewFile("info", path)
	require.NoError(t, err)
	logger.Info("first")
	require.NoError(t, closeFn())

	logger, closeFn, err = NewFile("info", path)
	require.NoError(t, err)
	logger.Info("second")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"first"`)
	assert.Contains(t, string(data), `"msg":"second"`)
}

func TestNewFile_BadLevel(t *testing.T) {
	_, _, err := NewFile("nope", filepath.Join(t.TempDir(), "pomo.log"))
	assert.Error(t, err)
}
