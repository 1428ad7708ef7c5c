// Package metrics provides Prometheus metrics for the gridiron service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	// Ingestion
	RowsIngested  prometheus.Counter
	IngestErrors  prometheus.Counter
	GamesIngested prometheus.Counter

	// Analysis
	AnalysisRuns     prometheus.Counter
	AnalysisFailures prometheus.Counter
	AnalysisDuration prometheus.Histogram
	ArtifactsWritten prometheus.Counter

	// HTTP
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// WebSocket
	WSClients prometheus.Gauge
}

// New creates the service metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		RowsIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gridiron",
			Subsystem: "ingest",
			Name:      "rows_total",
			Help:      "Stat rows ingested into the database.",
		}),
		IngestErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gridiron",
			Subsystem: "ingest",
			Name:      "errors_total",
			Help:      "Ingestion runs that ended in error.",
		}),
		GamesIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gridiron",
			Subsystem: "ingest",
			Name:      "games_total",
			Help:      "Schedule games ingested into the database.",
		}),

		AnalysisRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gridiron",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Completed analysis runs.",
		}),
		AnalysisFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gridiron",
			Subsystem: "analysis",
			Name:      "failures_total",
			Help:      "Analysis runs that ended in error.",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gridiron",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of a full analysis run.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		ArtifactsWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gridiron",
			Subsystem: "analysis",
			Name:      "artifacts_total",
			Help:      "Report artifacts written to disk.",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gridiron",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gridiron",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		WSClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "gridiron",
			Subsystem: "ws",
			Name:      "clients",
			Help:      "Currently connected WebSocket clients.",
		}),
	}
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
