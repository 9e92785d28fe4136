package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarnWritesLevelMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Warn("unknown rng mode", Fields{"mode": "lucky", "fallback": "true_hit"})

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "WARN\tunknown rng mode\t"), line)
	assert.Contains(t, line, `"mode": "lucky"`)
	assert.Less(t, strings.Index(line, "fallback"), strings.Index(line, "mode\""), "fields are sorted by key")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestErrorIncludesErrorText(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Error("equation failed", errors.New("boom"), nil)

	assert.True(t, strings.HasPrefix(buf.String(), "ERROR\tequation failed\t"))
	assert.Contains(t, buf.String(), `"error": "boom"`)
}

func TestInfoWithoutFields(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Info("rewound combat", nil)
	assert.Equal(t, "INFO\trewound combat\n", buf.String())
}

func TestNilLoggerUsesDefault(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("hello", nil) })
	assert.NotNil(t, l.Zap())
}
