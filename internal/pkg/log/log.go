// Package log прокладывает *slog.Logger через context.Context.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into кладёт логгер в контекст.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста (или возвращает slog.Default()).
func From(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}

	return slog.Default()
}

// With обогащает логгер из контекста атрибутами и кладёт результат обратно.
func With(ctx context.Context, args ...any) (context.Context, *slog.Logger) {
	l := From(ctx).With(args...)
	return Into(ctx, l), l
}
