// Package metrics registra los contadores Prometheus de la aplicación y
// expone el middleware HTTP de latencia.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	UsersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total registered users",
		},
	)

	LoginFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total failed login attempts",
		},
	)

	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total orders created",
		},
	)

	registerOnce sync.Once
)

// Handler para el endpoint /metrics.
var Handler = promhttp.Handler

// Init registra los colectores. Es idempotente para que los tests
// puedan llamarla sin pánico por registro duplicado.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPLatency)
		prometheus.MustRegister(UsersRegistered)
		prometheus.MustRegister(LoginFailures)
		prometheus.MustRegister(OrdersCreated)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTPMetrics mide la latencia de cada petición etiquetada por método,
// patrón de ruta de chi y código de estado.
func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		HTTPLatency.WithLabelValues(r.Method, routePattern(r), strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if patt := rc.RoutePattern(); patt != "" {
			return patt
		}
	}
	return r.URL.Path
}
