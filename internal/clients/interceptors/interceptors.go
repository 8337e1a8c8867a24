// interceptors предоставляет цепочку http.RoundTripper для исходящих
// запросов к REST-API бэкенда.
package interceptors

import "net/http"

// Interceptor оборачивает следующий RoundTripper цепочки.
type Interceptor func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc адаптирует функцию к http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain собирает транспорт: первый интерсептор — внешний.
// base == nil — используется http.DefaultTransport.
func Chain(base http.RoundTripper, ics ...Interceptor) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(ics) - 1; i >= 0; i-- {
		base = ics[i](base)
	}

	return base
}
