package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		level     string
		wantError bool
	}{
		{name: "default format", format: "", level: "info"},
		{name: "text format", format: FormatText, level: "debug"},
		{name: "json format", format: FormatJSON, level: "warn"},
		{name: "unknown format", format: "xml", level: "info", wantError: true},
		{name: "invalid text level", format: FormatText, level: "loud", wantError: true},
		{name: "invalid json level", format: FormatJSON, level: "loud", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.format, tt.level, &bytes.Buffer{})
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestLogrusLogger_WritesFieldsAndLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(FormatText, "info", buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.WithFields(map[string]interface{}{"tool": "calculate"}).
		WithErr(errors.New("boom")).
		Error("tool failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, "tool=calculate")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, `msg="tool failed"`)
}

func TestZapLogger_WritesJSONLines(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(FormatJSON, "debug", buf)
	require.NoError(t, err)

	logger.WithFields(map[string]interface{}{"method": "tools/list"}).Info("handled")
	logger.WithErr(errors.New("bad line")).Warn("decode")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "handled", first["msg"])
	assert.Equal(t, "tools/list", first["method"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "warn", second["level"])
	assert.Equal(t, "bad line", second[ErrorLogField])
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	assert.Same(t, logger, logger.WithFields(map[string]interface{}{"a": 1}))
	assert.Same(t, logger, logger.WithErr(errors.New("x")))
	assert.NotPanics(t, func() {
		logger.Debug("a")
		logger.Info("b")
		logger.Warn("c")
		logger.Error("d")
	})
}
