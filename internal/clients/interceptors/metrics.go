package interceptors

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — счётчик и гистограмма исходящих запросов к API.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics создаёт метрики и регистрирует их в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ossclient",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Outgoing API requests by route and HTTP status.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ossclient",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Outgoing API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.requests, m.duration)

	return m
}

// ClientMetrics учитывает каждый запрос; code="error" при сбое транспорта.
// m == nil — интерсептор прозрачен.
func ClientMetrics(m *Metrics) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		if m == nil {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			route := Route(r.URL.Path)

			resp, err := next.RoundTrip(r)

			code := "error"
			if err == nil {
				code = strconv.Itoa(resp.StatusCode)
			}
			m.requests.WithLabelValues(route, code).Inc()
			m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())

			return resp, err
		})
	}
}

// Route заменяет числовые сегменты пути на ":id", ограничивая кардинальность.
func Route(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segs[i] = ":id"
		}
	}

	return strings.Join(segs, "/")
}
