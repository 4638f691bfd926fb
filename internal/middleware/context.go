package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/vulchevd/web.io/internal/lang"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyRequestID ctxKey = "req_id"
	ctxKeyLogger    ctxKey = "logger"
	ctxKeyLang      ctxKey = "lang"
	ctxKeyCSRF      ctxKey = "csrf"
)

var noopLogger = zap.NewNop()

// WithRequestID stores request id in context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestID gets request id from context
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRequestID).(string)
	return v, ok
}

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	if logger, ok := ctx.Value(ctxKeyLogger).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}

// WithLang stores the page language.
func WithLang(ctx context.Context, c lang.Code) context.Context {
	return context.WithValue(ctx, ctxKeyLang, c)
}

// LangFrom returns the page language, or the default language.
func LangFrom(ctx context.Context) lang.Code {
	if c, ok := ctx.Value(ctxKeyLang).(lang.Code); ok {
		return c
	}
	return lang.Default
}
