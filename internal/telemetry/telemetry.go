// Package telemetry exposes Prometheus instrumentation for the dashboard
// server itself (not the system metrics it displays).
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts API requests by path and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sysdash",
		Name:      "http_requests_total",
		Help:      "API requests handled, by path and status class.",
	}, []string{"path", "class"})

	// ReportsGenerated counts report exports by format.
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sysdash",
		Name:      "reports_generated_total",
		Help:      "Report exports generated, by format.",
	}, []string{"format"})

	// LoginFailures counts rejected login attempts.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sysdash",
		Name:      "login_failures_total",
		Help:      "Login attempts rejected for bad credentials.",
	})
)

// RecordRequest tallies one handled request.
func RecordRequest(path string, status int) {
	class := "2xx"
	switch {
	case status >= 500:
		class = "5xx"
	case status >= 400:
		class = "4xx"
	case status >= 300:
		class = "3xx"
	}
	HTTPRequests.WithLabelValues(path, class).Inc()
}
