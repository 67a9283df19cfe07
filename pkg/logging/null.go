package logging

import "context"

// NullLogger drops every entry. It stands in for a FileLogger when no
// log file is configured, so callers never nil-check their logger.
type NullLogger struct{}

// NewNullLogger returns a logger that discards everything
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Debug(ctx context.Context, msg string, fields Fields) {}

func (l *NullLogger) Info(ctx context.Context, msg string, fields Fields) {}

func (l *NullLogger) Warn(ctx context.Context, msg string, fields Fields) {}

func (l *NullLogger) Error(ctx context.Context, msg string, err error, fields Fields) {}

// WithFields is a no-op; there is nothing to attach the fields to
func (l *NullLogger) WithFields(fields Fields) Logger { return l }

func (l *NullLogger) Close() error { return nil }
