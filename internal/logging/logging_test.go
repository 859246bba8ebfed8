package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "json")
	l.Info("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "v", line["k"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "text")
	l.Debug("dbg", "a", 1)
	assert.Contains(t, buf.String(), "dbg")
	assert.Contains(t, buf.String(), "a=1")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "json")
	l.Info("dropped")
	assert.Empty(t, buf.String())
	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel_Default(t *testing.T) {
	assert.Equal(t, "INFO", parseLevel("nonsense").String())
}
