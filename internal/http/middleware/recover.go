package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/pribylovaa/opensource-sharing/internal/clients/interceptors"
	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

var errPanic = errors.New("handler panic")

// Recover превращает панику ручки в 500/internal. Клиент получает только
// request_id, причина и стек остаются в логе. Если ручка уже начала ответ,
// второй ответ не пишется. http.ErrAbortHandler пробрасывается дальше:
// так ручка обрывает соединение намеренно.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("request_id", requestID(w, r)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("reason", rec),
					slog.String("stack", string(debug.Stack())),
				)

				if sw.status != 0 {
					return
				}
				apierrors.WriteError(sw, r, errPanic)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}

// requestID — id запроса: RequestID стоит внутри Recover, поэтому
// в контексте его ещё нет, но заголовки он уже проставил.
func requestID(w http.ResponseWriter, r *http.Request) string {
	if id := w.Header().Get(interceptors.HeaderRequestID); id != "" {
		return id
	}
	return r.Header.Get(interceptors.HeaderRequestID)
}
