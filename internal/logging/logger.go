// Package logging wraps a zap logger behind a small leveled API with
// key/value fields.
package logging

import (
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields carries structured context for a log line.
type Fields map[string]interface{}

// Logger writes leveled lines through zap.
type Logger struct {
	z *zap.Logger
}

// New returns a Logger writing console-encoded lines to w. A nil w writes to stderr.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.InfoLevel)
	return &Logger{z: zap.New(core)}
}

var defaultLogger = New(nil)

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger
}

// Zap exposes the underlying logger.
func (l *Logger) Zap() *zap.Logger {
	return l.orDefault().z
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.orDefault().z.Sync()
}

func (l *Logger) orDefault() *Logger {
	if l == nil {
		return defaultLogger
	}
	return l
}

// zapFields orders fields by key so lines are stable across runs.
func zapFields(fields Fields, extra ...zap.Field) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys)+len(extra))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return append(out, extra...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, fields Fields) {
	l.orDefault().z.Info(msg, zapFields(fields)...)
}

// Warn logs a recoverable problem.
func (l *Logger) Warn(msg string, fields Fields) {
	l.orDefault().z.Warn(msg, zapFields(fields)...)
}

// Error logs an error alongside the fields.
func (l *Logger) Error(msg string, err error, fields Fields) {
	var extra []zap.Field
	if err != nil {
		extra = append(extra, zap.Error(err))
	}
	l.orDefault().z.Error(msg, zapFields(fields, extra...)...)
}
