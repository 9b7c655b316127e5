package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", Outputs: []string{"stdout"}})
	assert.Error(t, err)
}

func TestNewRejectsUnknownOutput(t *testing.T) {
	_, err := New(Config{Level: "info", Outputs: []string{"syslog"}})
	assert.Error(t, err)
}

func TestFileOutputWritesEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gbce.log")
	errPath := filepath.Join(dir, "gbce.err")

	l, err := New(Config{Level: "info", Outputs: []string{"file"}, OutputFile: path, ErrorFile: errPath, Format: "json"})
	require.NoError(t, err)

	l.LogTrade("recorded", map[string]interface{}{"symbol": "TEA", "qty": 100})
	l.LogQuery("vwap", map[string]interface{}{"symbol": "TEA", "vwap": 106.67})
	l.LogError(errors.New("boom"), nil)
	_ = l.Close()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, `"msg":"trade_event"`)
	assert.Contains(t, body, `"event":"recorded"`)
	assert.Contains(t, body, `"msg":"query_event"`)
	assert.Contains(t, body, `"symbol":"TEA"`)

	errRaw, err := os.ReadFile(errPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(errRaw), "error_event"))
	assert.Contains(t, string(errRaw), `"error":"boom"`)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.LogTrade("noop", nil)
	assert.NoError(t, l.Close())
}
