package logger

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{name: "logs when DATADASH_DEBUG is set", envValue: "1", expectLog: true},
		{name: "logs for any value", envValue: "true", expectLog: true},
		{name: "silent when unset", envValue: "", expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			t.Setenv(DebugEnv, tt.envValue)

			NewEnvLogger("[sim]").Debug("step %d", 3)

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[sim] DEBUG: step 3")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	buf := captureLog(t)
	l := NewEnvLogger("[chart]")

	l.Info("listening on %s", ":5000")
	l.Warn("slow render")
	l.Error("render failed")

	out := buf.String()
	assert.Contains(t, out, "[chart] listening on :5000")
	assert.Contains(t, out, "[chart] WARN: slow render")
	assert.Contains(t, out, "[chart] ERROR: render failed")
}

func TestNoopLogger(t *testing.T) {
	buf := captureLog(t)

	l := Noop()
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	assert.Empty(t, buf.String())
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Error("error %s", "msg")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug msg"}, l.Messages[0])
	assert.Equal(t, LogMessage{Level: "error", Message: "error msg"}, l.Messages[3])
	assert.True(t, l.HasLevel("warn"))
	assert.True(t, l.Contains("info m"))
	assert.False(t, l.Contains("nope"))

	l.Clear()
	assert.Empty(t, l.Messages)
	assert.False(t, l.HasLevel("warn"))
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Info("frame %d", i)
		}(i)
	}
	wg.Wait()

	assert.Len(t, l.Messages, 20)
}

func TestWriter_SplitsLines(t *testing.T) {
	l := NewBufferLogger()
	w := Writer(l)

	_, err := fmt.Fprint(w, "GET / 200\nGET /health")
	require.NoError(t, err)
	require.Len(t, l.Messages, 1)
	assert.Equal(t, "GET / 200", l.Messages[0].Message)

	_, err = fmt.Fprint(w, " 200\r\n")
	require.NoError(t, err)
	require.Len(t, l.Messages, 2)
	assert.Equal(t, "GET /health 200", l.Messages[1].Message)
}

func TestDefault(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	assert.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)
	assert.Equal(t, buf, Default())
}
