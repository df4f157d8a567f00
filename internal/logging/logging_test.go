package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC, "info")

	l.Info(map[string]any{"event": "ronda_salva", "ronda_id": 7})
	l.Error(map[string]any{"event": "falha", "error": errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "ronda_salva", first["event"])
	assert.Equal(t, float64(7), first["ronda_id"])
	assert.NotEmpty(t, first["ts"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "error", second["level"])
	assert.Equal(t, "boom", second["error"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil, "warning")

	l.Debug(map[string]any{"msg": "hidden"})
	l.Info(map[string]any{"msg": "hidden"})
	l.Warn(map[string]any{"msg": "shown"})

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_DoesNotMutateInput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC, "debug")
	fields := map[string]any{"msg": "x"}

	l.Info(fields)

	_, hasTS := fields["ts"]
	assert.False(t, hasTS)
}
