package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})).With("component", "test"))

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "sent", "job", "morning")
	logger.Error(context.Background(), "failed", "error", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "sent", first["msg"])
	assert.Equal(t, "morning", first["job"])
	assert.Equal(t, "test", first["component"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "ERROR", second["level"])
}

func TestSLoggerNilSafe(t *testing.T) {
	var nilLogger *SLogger
	assert.NotPanics(t, func() {
		nilLogger.Info(context.Background(), "x")
		New(nil).Error(context.Background(), "x")
		New(nil).Debug(context.Background(), "x")
	})
}
