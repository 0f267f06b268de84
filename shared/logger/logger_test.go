package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		Configure("info", "text")
	})
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var fields map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &fields))
	return fields
}

func TestWithComponent(t *testing.T) {
	buf := captureOutput(t)
	Configure("info", "json")

	WithComponent("source").Info("ytInitialData found")

	fields := decodeLine(t, buf)
	assert.Equal(t, "source", fields["component"])
	assert.Equal(t, "info", fields["level"])
	assert.Equal(t, "ytInitialData found", fields["msg"])
}

func TestGetLoggerAddsCaller(t *testing.T) {
	buf := captureOutput(t)
	Configure("info", "json")

	GetLogger().Warn("careful")

	fields := decodeLine(t, buf)
	assert.Contains(t, fields["function"], "TestGetLoggerAddsCaller")
	assert.NotZero(t, fields["line"])
}

func TestConfigure(t *testing.T) {
	t.Run("LevelFiltersLines", func(t *testing.T) {
		buf := captureOutput(t)
		Configure("warn", "text")

		WithComponent("agent").Info("hidden")
		WithComponent("agent").Warn("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
	})

	t.Run("UnknownLevelKeepsCurrent", func(t *testing.T) {
		buf := captureOutput(t)
		Configure("debug", "text")
		Configure("verbose", "text")

		assert.Contains(t, buf.String(), `Unknown log level "verbose"`)
		WithComponent("agent").Debug("still debugging")
		assert.True(t, strings.Contains(buf.String(), "still debugging"))
	})
}
