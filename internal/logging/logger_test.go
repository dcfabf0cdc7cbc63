package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("stream", &buf)

	l.Debug("скрыто %d", 1)
	l.Info("регион %d готов", 7)
	l.Error("сбой")

	out := buf.String()
	assert.NotContains(t, out, "скрыто")
	assert.Contains(t, out, "[INFO] [stream] регион 7 готов")
	assert.Contains(t, out, "[ERROR] [stream] сбой")

	buf.Reset()
	l.SetLevels(TRACE, TRACE)
	l.Trace("детали")
	assert.Contains(t, buf.String(), "[TRACE] [stream] детали")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	SetLogDirectory(dir)
	defer SetLogDirectory("")

	l, err := NewLogger("storage")
	require.NoError(t, err)
	l.Debug("в файл")
	require.NoError(t, l.Close())

	files, err := filepath.Glob(filepath.Join(dir, "storage_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] [storage] в файл")
}

func TestManagerReusesLoggers(t *testing.T) {
	lm := &LoggerManager{loggers: make(map[string]*Logger)}

	a := lm.MustGetLogger("api")
	b := lm.MustGetLogger("api")
	assert.Same(t, a, b)
	assert.Equal(t, []string{"api"}, lm.ListComponents())

	require.NoError(t, lm.SetLogLevel("api", DEBUG, TRACE))
	assert.Error(t, lm.SetLogLevel("missing", DEBUG, TRACE))
	assert.NoError(t, lm.CloseAll())
	assert.Empty(t, lm.ListComponents())
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("ничего") })
}
