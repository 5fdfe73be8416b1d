// Package logging carries a logrus FieldLogger through context.Context so
// solver code can log with the fields of the pass that called it.
package logging

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type loggerContextKey string

const loggerContextKeyVal = loggerContextKey("logrus.FieldLogger")

// Logger returns the logger stored in ctx, or the logrus standard logger.
func Logger(ctx context.Context) logrus.FieldLogger {
	if val := ctx.Value(loggerContextKeyVal); val != nil {
		if logger, ok := val.(logrus.FieldLogger); ok {
			return logger
		}
	}

	return logrus.StandardLogger()
}

// WithLogger adds logger to ctx.
func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerContextKeyVal, logger)
}

// WithFields derives a logger with extra fields and stores it in ctx.
func WithFields(ctx context.Context, fields logrus.Fields) (context.Context, logrus.FieldLogger) {
	l := Logger(ctx).WithFields(fields)

	return WithLogger(ctx, l), l
}

// New builds a text logger writing to w at the given level.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	return l
}

// Discard is a logger that drops everything.
func Discard() *logrus.Logger { return New(io.Discard, logrus.PanicLevel) }
