package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "linkvault"

	PipelineSubsystem   = "pipeline"
	MetadataSubsystem   = "metadata"
	EnrichmentSubsystem = "enrichment"
	StorageSubsystem    = "storage"
)

// Общие метрики HTTP.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)

	ExternalCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "external_calls_total",
			Help:      "Total number of outbound calls to external services",
		},
		[]string{"service", "status"},
	)

	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "external_call_duration_seconds",
			Help:      "Outbound call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service"},
	)
)

// Метрики конвейера.
var (
	PipelineOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PipelineSubsystem,
			Name:      "outcomes_total",
			Help:      "Total number of submissions by channel and terminal state",
		},
		[]string{"channel", "outcome"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: PipelineSubsystem,
			Name:      "duration_seconds",
			Help:      "End-to-end submission processing time in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
		},
		[]string{"channel"},
	)

	MetadataAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: MetadataSubsystem,
			Name:      "strategy_attempts_total",
			Help:      "Total number of metadata strategy attempts",
		},
		[]string{"platform", "strategy", "status"},
	)

	EnrichmentCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: EnrichmentSubsystem,
			Name:      "model_calls_total",
			Help:      "Total number of completion model calls",
		},
		[]string{"model", "status"},
	)

	LinksBySourceType = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: StorageSubsystem,
			Name:      "links_count",
			Help:      "Number of stored links by source type",
		},
		[]string{"source_type"},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: StorageSubsystem,
			Name:      "database_queries_total",
			Help:      "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: StorageSubsystem,
			Name:      "database_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func RecordHTTPRequest(service, method, endpoint string, statusCode int, duration time.Duration) {
	status := "success"
	if statusCode >= 400 {
		status = "error"
	}

	HTTPRequestsTotal.WithLabelValues(service, method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(service, method, endpoint).Observe(duration.Seconds())
}

func RecordExternalCall(service, status string, duration time.Duration) {
	ExternalCallsTotal.WithLabelValues(service, status).Inc()
	ExternalCallDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func RecordPipelineOutcome(channel, outcome string, duration time.Duration) {
	PipelineOutcomesTotal.WithLabelValues(channel, outcome).Inc()
	PipelineDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

func RecordMetadataAttempt(platform, strategy, status string) {
	MetadataAttemptsTotal.WithLabelValues(platform, strategy, status).Inc()
}

func RecordModelCall(model, status string) {
	EnrichmentCallsTotal.WithLabelValues(model, status).Inc()
}

func UpdateLinksCount(sourceType string, count float64) {
	LinksBySourceType.WithLabelValues(sourceType).Set(count)
}

func RecordDatabaseQuery(operation, status string, duration time.Duration) {
	DatabaseQueriesTotal.WithLabelValues(operation, status).Inc()
	DatabaseQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
