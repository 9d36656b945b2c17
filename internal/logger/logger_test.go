package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"node": "banner", "phase": "visible"})
	log.Info("phase settled")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "phase settled", entry["message"])
	require.Equal(t, "banner", entry["node"])
	require.Equal(t, "visible", entry["phase"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.False(t, log.DebugEnabled())
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerWarnErrIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)
	require.True(t, log.DebugEnabled())

	log = log.With("category", "customState")
	log.WarnErr(errors.New("boom"), "predicate unsatisfied")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "predicate unsatisfied", entry["message"])
	require.Equal(t, "customState", entry["category"])
	require.Equal(t, "boom", entry["error"])
	require.Equal(t, "warn", entry["level"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	require.Nil(t, log.With("k", "v"))
	require.False(t, log.DebugEnabled())
	log.Info("ignored")
	log.Error(errors.New("ignored"), "ignored")
}

func TestNopDiscards(t *testing.T) {
	t.Parallel()

	log := Nop()
	require.False(t, log.DebugEnabled())
	log.Warn("dropped")
}
