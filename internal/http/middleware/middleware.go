// Package middleware — обвязка запросов сервера представлений.
//
// Порядок в роутере (внешний -> внутренний): Recover, RequestID, Logging,
// AuthBearer, Hydrated, Timeout. RequestID идёт раньше Logging, чтобы id
// попал в логгер запроса и в исходящие запросы REST-клиента; Hydrated
// раньше Timeout, чтобы ожидание сессии не съедало бюджет бэкенда.
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain оборачивает h так, что mws[0] выполняется первым.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusWriter запоминает первый записанный статус и число байт тела.
// Нулевой status — ответ ещё не начат.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w}
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(p)
	w.count += n
	return n, err
}

// Unwrap открывает исходный writer для http.ResponseController (Flush и дедлайны).
func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
