package logger

import (
	"bytes"
	"errors"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	flags := log.Flags()
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestFormatFieldsSorted(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("", formatFields(nil))
	assert.Equal("{a=1, b=x, c=0.50}", formatFields(Fields{"c": 0.5, "b": "x", "a": 1}))
}

func TestLevels(t *testing.T) {
	buf := capture(t)

	Debug("hidden", nil)
	Info("shown", Fields{"key": "C"})
	assert.Equal(t, "[INFO] shown {key=C}\n", buf.String())

	buf.Reset()
	SetLevel(LevelWarn)
	Info("hidden", nil)
	Warn("careful", nil)
	Error("broken", errors.New("boom"), nil)
	assert.Equal(t, "[WARN] careful \n[ERROR] broken: boom \n", buf.String())

	buf.Reset()
	SetLevel(ParseLevel("debug"))
	Debug("detail", Fields{"n": int64(3)})
	assert.Equal(t, "[DEBUG] detail {n=3}\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(LevelDebug, ParseLevel(" DEBUG "))
	assert.Equal(LevelWarn, ParseLevel("warning"))
	assert.Equal(LevelError, ParseLevel("error"))
	assert.Equal(LevelInfo, ParseLevel("whatever"))
}

func TestWithRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/progressions", nil)
	r.Header.Set("X-Request-ID", "abc")
	assert.Equal(t, Fields{"request_id": "abc", "method": "POST", "path": "/progressions"}, WithRequest(r))
}

func TestInitSentryWithoutDSN(t *testing.T) {
	flush := InitSentry("", "test", "dev", true)
	assert.NotPanics(t, flush)
}

func TestSentryOptions(t *testing.T) {
	opts := sentryOptions("https://key@sentry.example/1", "production", "1.2.0", false)
	assert.Equal(t, "chordbloom@1.2.0", opts.Release)
	assert.Equal(t, "production", opts.Environment)
	assert.False(t, opts.Debug)
	assert.True(t, sentryOptions("", "development", "dev", true).Debug)
}
