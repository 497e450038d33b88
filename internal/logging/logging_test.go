package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}

	assert.True(t, IsLevel("Warn"))
	assert.False(t, IsLevel("verbose"))
	assert.True(t, IsFormat(""))
	assert.False(t, IsFormat("xml"))
}

func TestNew_TextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", FormatText)

	log.Info("hidden")
	log.Warn("shown", "mode", "ROTATION_ANGLE")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "mode=ROTATION_ANGLE")
}

func TestNew_JSONUsesUTCTimestamps(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", FormatJSON).Debug("pushed", "merged", true)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "pushed", rec["msg"])
	assert.Equal(t, true, rec["merged"])
	ts, ok := rec["time"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`, ts)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(t.Context(), slog.LevelError))
}
