package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pribylovaa/opensource-sharing/internal/clients/interceptors"
)

// RequestID обеспечивает наличие X-Request-Id:
//  1. читает заголовок X-Request-Id, если есть;
//  2. иначе генерирует UUID;
//  3. кладёт id в заголовки ответа и запроса и в контекст по ключу
//     interceptors.CtxRequestID: его подхватывает REST-клиент бэкенда,
//     так что запросы к бэкенду несут тот же id.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(interceptors.HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(interceptors.HeaderRequestID, id)
			}
			w.Header().Set(interceptors.HeaderRequestID, id)

			ctx := context.WithValue(r.Context(), interceptors.CtxRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
