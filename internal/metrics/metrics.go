// Package metrics defines Prometheus metrics for cinelake.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinelake_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelake_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelake_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	ImportBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelake_import_batches_total",
			Help: "Import batches by outcome (committed, rolled_back, rejected)",
		},
		[]string{"outcome"},
	)

	ImportRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelake_import_records_total",
			Help: "Imported records by outcome (inserted, updated, skipped)",
		},
		[]string{"outcome"},
	)

	Translations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelake_translations_total",
			Help: "Question-to-SQL translations by strategy (gemini, patterns, none)",
		},
		[]string{"strategy"},
	)

	PredictorReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinelake_predictor_ready",
			Help: "Whether the success predictor is loaded and serving (1) or not (0)",
		},
	)

	MovieCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinelake_movies_total",
			Help: "Total movie row count",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		ImportBatches, ImportRecords, Translations,
		PredictorReady, MovieCount,
	)
}
