// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns a logger pre-tagged with the request ID injected by the
// Logger middleware, so every log line from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_number", o.OrderNumber)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/priyadarshi/darzi/config"
)

var L *slog.Logger

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

func baseHandler() slog.Handler {
	switch config.AppEnv() {
	case "production", "prod":
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Setup attaches the optional MongoDB sink when MONGO_URI is configured.
// Log records then go to both stdout and the mongo collection. Returns a
// close function that flushes the sink; safe to call when no sink exists.
func Setup() (func(), error) {
	uri := config.MongoURI()
	if uri == "" {
		return func() {}, nil
	}

	mh, err := NewMongoHandler(uri, config.MongoDB(), "logs")
	if err != nil {
		return func() {}, err
	}

	L = slog.New(fanout{baseHandler(), mh})
	slog.SetDefault(L)
	return func() { _ = mh.Close() }, nil
}

// fanout dispatches each record to every wrapped handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the per-request logger stored by the Logger middleware,
// or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-scoped *slog.Logger into ctx. Called by
// the Logger middleware; application code reads it back via WithCtx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
