package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_Keys(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelDebug)

	logger.Debug("Dispatch finished", "dispatch_id", "0123456789abcdef", "error", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "dispatch_id=01234567 ")
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "error=")
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "")
	assert.Equal(t, slog.LevelInfo, LevelFromEnv(slog.LevelInfo))

	t.Setenv(EnvLevel, "warn")
	assert.Equal(t, slog.LevelWarn, LevelFromEnv(slog.LevelInfo))

	t.Setenv(EnvLevel, "DEBUG")
	assert.Equal(t, slog.LevelDebug, LevelFromEnv(slog.LevelInfo))

	t.Setenv(EnvLevel, "loud")
	assert.Equal(t, slog.LevelError, LevelFromEnv(slog.LevelError))
}

func TestNewNop(t *testing.T) {
	assert.False(t, NewNop().Enabled(context.Background(), slog.LevelError))
}
