package interceptors

import (
	"log/slog"
	"net/http"
	"time"
)

// ClientLogging — логирование исходящих запросов.
// Пишет одну финальную запись msg="http_client": request_id, method,
// path, status, dur; при ошибке транспорта уровень Warn и err.
//
// Безопасность: не логирует тела и заголовок Authorization.
func ClientLogging(base *slog.Logger) Interceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			l := base.With(
				slog.String("request_id", r.Header.Get(HeaderRequestID)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("http_client",
					slog.Duration("dur", time.Since(start)),
					slog.String("err", err.Error()),
				)
				return nil, err
			}

			l.Info("http_client",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
