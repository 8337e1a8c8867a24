package middleware

import (
	"context"
	"net/http"
	"time"
)

// HydrationWaiter — источник сохранённой сессии (app.Store).
type HydrationWaiter interface {
	WaitHydrated(ctx context.Context) error
}

// Hydrated придерживает запрос, пока сессия не загружена из хранилища,
// но не дольше d. По истечении запрос проходит дальше, и ручки, которым
// нужен пользователь, отвечают 409 hydrating.
func Hydrated(s HydrationWaiter, d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if s == nil || d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			_ = s.WaitHydrated(ctx)
			cancel()

			next.ServeHTTP(w, r)
		})
	}
}
