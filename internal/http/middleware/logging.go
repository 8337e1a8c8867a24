package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/opensource-sharing/internal/clients/interceptors"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

// Logging кладёт request-scoped логгер в контекст и пишет одну запись
// "http" на запрос. Запросы, завершившиеся 5xx, пишутся уровнем Error.
func Logging(l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := l
			if rid := r.Header.Get(interceptors.HeaderRequestID); rid != "" {
				reqLogger = reqLogger.With(slog.String("request_id", rid))
			}
			r = r.WithContext(log.Into(r.Context(), reqLogger))

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			dur := time.Since(start)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			lvl := slog.LevelInfo
			if sw.status >= http.StatusInternalServerError {
				lvl = slog.LevelError
			}

			log.From(r.Context()).LogAttrs(r.Context(), lvl, "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("dur", dur),
				slog.Int("bytes", sw.count),
			)
		})
	}
}
