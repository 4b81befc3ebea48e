// Package logger provides a structured, levelled logger built on log/slog.
//
// Setup picks the handler from the runtime environment: JSON for
// production (log aggregators), text for development. A per-request logger
// pre-tagged with the request id is injected by the Logger middleware and
// retrieved with WithCtx:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order received", "order_id", id)
package logger

import (
	"context"
	"log/slog"
	"os"
)

var L = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Setup configures the process-wide logger for the given environment.
// When sink is non-nil, log records are fanned out to it as well (used
// for the optional MongoDB log sink).
func Setup(env string, sink slog.Handler) {
	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if sink != nil {
		handler = NewMultiHandler(handler, sink)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request-scoped *slog.Logger stored in ctx, or the
// base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware; not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level using the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level using the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level using the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level using the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
