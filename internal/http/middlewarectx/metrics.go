package middlewarectx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "user_service_requests_total",
		Help: "Total number of requests",
	}, []string{"method", "endpoint", "status"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "user_service_request_duration_seconds",
		Help: "Request latency in seconds",
	}, []string{"method", "endpoint"})
)

// MetricsMiddleware records a counter and latency histogram per request,
// labelled with method, path and response status.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		requestCount.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
		requestLatency.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())
	})
}
