package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zeitwerk_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zeitwerk_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	timerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zeitwerk_timer_transitions_total",
		Help: "Count of timer start/stop transitions by result",
	}, []string{"transition", "result"})

	runningTimers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "zeitwerk_running_timers",
		Help: "Number of currently running timers (logical state)",
	})

	reportExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zeitwerk_report_exports_total",
		Help: "Count of report exports by format and result",
	}, []string{"format", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveTimerTransition counts a start or stop attempt with its result label.
func ObserveTimerTransition(transition, result string) {
	timerTransitions.WithLabelValues(transition, result).Inc()
}

// IncrementRunningTimers increments the running timer gauge.
func IncrementRunningTimers() {
	runningTimers.Inc()
}

// DecrementRunningTimers decrements the running timer gauge.
func DecrementRunningTimers() {
	runningTimers.Dec()
}

// ObserveReportExport counts an export attempt for the given format.
func ObserveReportExport(format, result string) {
	reportExports.WithLabelValues(format, result).Inc()
}
