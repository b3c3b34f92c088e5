package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type moduleMetrics struct {
	invocationTotal    *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	backendErrorsTotal *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metricsInst *moduleMetrics
)

func getMetrics() *moduleMetrics {
	metricsOnce.Do(func() {
		m := &moduleMetrics{
			invocationTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "tool_invocation_total",
					Help: "Total tool invocations by tool and status.",
				},
				[]string{"tool", "status"},
			),
			invocationDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name: "tool_invocation_duration_seconds",
					Help: "Tool invocation duration in seconds by tool.",
					// Generation runs for minutes; the default buckets
					// top out at 10s and would flatten everything.
					Buckets: []float64{0.005, 0.1, 1, 5, 15, 60, 180, 600, 900},
				},
				[]string{"tool"},
			),
			backendErrorsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "backend_errors_total",
					Help: "Total backend invocation errors by error kind.",
				},
				[]string{"kind"},
			),
		}

		prometheus.MustRegister(
			m.invocationTotal,
			m.invocationDuration,
			m.backendErrorsTotal,
		)

		metricsInst = m
	})

	return metricsInst
}

// EnsureRegistered initializes and registers metrics the first time it is called.
func EnsureRegistered() {
	_ = getMetrics()
}

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler() http.Handler {
	EnsureRegistered()
	return promhttp.Handler()
}

// RecordToolInvocation records one dispatched tool call.
func RecordToolInvocation(tool string, duration time.Duration, success bool) {
	m := getMetrics()
	status := "error"
	if success {
		status = "success"
	}
	m.invocationTotal.WithLabelValues(tool, status).Inc()
	m.invocationDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordBackendError records one classified backend failure.
func RecordBackendError(kind string) {
	m := getMetrics()
	m.backendErrorsTotal.WithLabelValues(kind).Inc()
}
