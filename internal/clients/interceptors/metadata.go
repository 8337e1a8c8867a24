package interceptors

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type CtxKey string

const (
	CtxRequestID CtxKey = "request_id"
	CtxAuthToken CtxKey = "auth_token"
)

const HeaderRequestID = "X-Request-Id"

// TokenSource отдаёт текущий токен доступа ("" — аноним).
type TokenSource interface {
	Token() string
}

// ClientWithMetadata — добавляет в исходящий запрос заголовки:
//   - X-Request-Id (из контекста, иначе новый UUID),
//   - Authorization: Bearer <token> (токен из контекста имеет приоритет
//     над tokens; пустой токен не отправляется),
//   - User-Agent (если передан параметром).
//
// Заголовки, уже выставленные вызывающим кодом, не перезаписываются.
func ClientWithMetadata(userAgent string, tokens TokenSource) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			ctx := r.Context()
			r = r.Clone(ctx)

			if r.Header.Get(HeaderRequestID) == "" {
				rid := stringValue(ctx, CtxRequestID)
				if rid == "" {
					rid = uuid.NewString()
				}
				r.Header.Set(HeaderRequestID, rid)
			}

			if r.Header.Get("Authorization") == "" {
				tok := stringValue(ctx, CtxAuthToken)
				if tok == "" && tokens != nil {
					tok = tokens.Token()
				}
				if tok != "" {
					r.Header.Set("Authorization", "Bearer "+tok)
				}
			}

			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}

// WithAuthToken кладёт в контекст токен для одного вызова
// (например, проверка токена из OAuth-колбэка до входа).
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CtxAuthToken, token)
}

// WithRequestID кладёт в контекст идентификатор запроса.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, CtxRequestID, rid)
}

func stringValue(ctx context.Context, k CtxKey) string {
	s, _ := ctx.Value(k).(string)
	return s
}
