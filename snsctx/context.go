// Package snsctx carries per-invocation settings of bus adapters on a context.
package snsctx

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	keyVerbose ctxKey = iota
	keyLogger
)

// IsVerbose reports whether adapters should dump raw traffic.
func IsVerbose(ctx context.Context) bool {
	v, _ := ctx.Value(keyVerbose).(bool)
	return v
}

func SetVerbose(ctx context.Context, value bool) context.Context {
	return context.WithValue(ctx, keyVerbose, value)
}

// Logger returns the logger stored with WithLogger, or slog.Default.
func Logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(keyLogger).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}
