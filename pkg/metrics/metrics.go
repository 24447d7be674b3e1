// Package metrics provides Prometheus metrics for the analytics service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Report kinds used as the "kind" label.
const (
	ReportEvent     = "event"
	ReportWorkspace = "workspace"
)

var (
	reportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventlens",
		Subsystem: "analytics",
		Name:      "reports_generated_total",
		Help:      "Number of analytics reports generated, by report kind.",
	}, []string{"kind"})

	reportsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventlens",
		Subsystem: "analytics",
		Name:      "reports_failed_total",
		Help:      "Number of analytics report computations that failed, by report kind.",
	}, []string{"kind"})

	reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eventlens",
		Subsystem: "analytics",
		Name:      "report_duration_seconds",
		Help:      "Wall time to assemble an analytics report, by report kind.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventlens",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests, by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eventlens",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	exportJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventlens",
		Subsystem: "export",
		Name:      "jobs_total",
		Help:      "Report export jobs processed, by outcome.",
	}, []string{"outcome"})
)

// ReportGenerated records a successful report assembly.
func ReportGenerated(kind string, d time.Duration) {
	reportsGenerated.WithLabelValues(kind).Inc()
	reportDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ReportFailed records a failed report assembly.
func ReportFailed(kind string) {
	reportsFailed.WithLabelValues(kind).Inc()
}

// ObserveHTTPRequest records one handled HTTP request.
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ExportJobProcessed records one export job outcome ("ok", "retried", "failed").
func ExportJobProcessed(outcome string) {
	exportJobs.WithLabelValues(outcome).Inc()
}

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
