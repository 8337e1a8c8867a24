package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout ограничивает время, которое запрос может потратить на бэкенд.
// Более ранний дедлайн клиента сохраняется, более поздний урезается до d.
// d <= 0 отключает ограничение.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
