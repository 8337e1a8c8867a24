package middleware

import (
	"net/http"
	"strings"

	"github.com/pribylovaa/opensource-sharing/internal/clients/interceptors"
)

// AuthBearer извлекает Bearer-токен из Authorization и кладёт его в контекст
// (interceptors.WithAuthToken). Такой токен имеет приоритет над токеном
// сессии Store при запросах к бэкенду.
func AuthBearer() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const prefix = "Bearer "

			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, prefix) {
				if token := strings.TrimSpace(auth[len(prefix):]); token != "" {
					r = r.WithContext(interceptors.WithAuthToken(r.Context(), token))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
