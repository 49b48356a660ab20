package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("debug", &buf)

	l.WithFields(map[string]interface{}{"path": "/home"}).
		WithField("status", 307).
		WithError(errors.New("boom")).
		Warn("guard redirect")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "guard redirect", entry["message"])
	assert.Equal(t, "/home", entry["path"])
	assert.Equal(t, float64(307), entry["status"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("WARN", &buf)

	l.Info("dropped")
	l.Debug("dropped too")
	assert.Empty(t, buf.String())

	l.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLogLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, parseLogLevel("INFO"), parseLogLevel("nonsense"))
	assert.Equal(t, parseLogLevel("WARN"), parseLogLevel("warning"))
}

func TestWithFieldsCopiesCallerMap(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("INFO", &buf)

	fields := map[string]interface{}{"path": "/home"}
	l.WithFields(fields).WithField("status", 200).Info("done")

	assert.Equal(t, map[string]interface{}{"path": "/home"}, fields)
}
