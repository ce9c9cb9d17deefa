package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
)

const (
	statusSuccess = "success"
)

func TestRecordHTTPRequest(t *testing.T) {
	// Arrange
	service := "test-service"
	method := "GET"
	endpoint := "/test"

	// Act
	metrics.RecordHTTPRequest(service, method, endpoint, 200, 100*time.Millisecond)

	// Assert
	counterValue := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(service, method, endpoint, statusSuccess))
	assert.Equal(t, float64(1), counterValue)
}

func TestRecordHTTPRequestError(t *testing.T) {
	// Arrange
	service := "test-service"
	method := "POST"
	endpoint := "/error"

	// Act
	metrics.RecordHTTPRequest(service, method, endpoint, 500, 50*time.Millisecond)

	// Assert
	counterValue := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(service, method, endpoint, "error"))
	assert.Equal(t, float64(1), counterValue)
}

func TestRecordExternalCall(t *testing.T) {
	// Arrange
	service := "youtube_oembed_test"

	// Act
	metrics.RecordExternalCall(service, statusSuccess, 120*time.Millisecond)
	metrics.RecordExternalCall(service, "server_error", 80*time.Millisecond)

	// Assert
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ExternalCallsTotal.WithLabelValues(service, statusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ExternalCallsTotal.WithLabelValues(service, "server_error")))
}

func TestRecordPipelineOutcome(t *testing.T) {
	// Arrange
	channel := "form_test"
	outcomes := []string{"done", "partial", "no_url", "persist_failed"}

	// Act & Assert
	for _, outcome := range outcomes {
		initial := testutil.ToFloat64(metrics.PipelineOutcomesTotal.WithLabelValues(channel, outcome))

		metrics.RecordPipelineOutcome(channel, outcome, time.Second)

		final := testutil.ToFloat64(metrics.PipelineOutcomesTotal.WithLabelValues(channel, outcome))
		assert.Equal(t, initial+1, final, "outcome %s", outcome)
	}
}

func TestRecordMetadataAttempt(t *testing.T) {
	metrics.RecordMetadataAttempt("generic", "opengraph_test", "miss")

	value := testutil.ToFloat64(metrics.MetadataAttemptsTotal.WithLabelValues("generic", "opengraph_test", "miss"))
	assert.Equal(t, float64(1), value)
}

func TestRecordModelCall(t *testing.T) {
	metrics.RecordModelCall("gemini-test", "unavailable")

	value := testutil.ToFloat64(metrics.EnrichmentCallsTotal.WithLabelValues("gemini-test", "unavailable"))
	assert.Equal(t, float64(1), value)
}

func TestUpdateLinksCount(t *testing.T) {
	// Arrange
	sourceType := "youtube"
	count := float64(42)

	// Act
	metrics.UpdateLinksCount(sourceType, count)

	// Assert
	gaugeValue := testutil.ToFloat64(metrics.LinksBySourceType.WithLabelValues(sourceType))
	assert.Equal(t, count, gaugeValue)
}

func TestRecordDatabaseQuery(t *testing.T) {
	// Arrange
	operation := "INSERT"

	// Act
	metrics.RecordDatabaseQuery(operation, statusSuccess, 10*time.Millisecond)

	// Assert
	counterValue := testutil.ToFloat64(metrics.DatabaseQueriesTotal.WithLabelValues(operation, statusSuccess))
	assert.Equal(t, float64(1), counterValue)
}

func TestMetricsExist(t *testing.T) {
	metrics.RecordHTTPRequest("exists", "GET", "/", 200, time.Millisecond)
	metrics.RecordExternalCall("exists", statusSuccess, time.Millisecond)
	metrics.RecordPipelineOutcome("exists", "done", time.Millisecond)
	metrics.RecordMetadataAttempt("exists", "exists", "hit")
	metrics.RecordModelCall("exists", "ok")
	metrics.UpdateLinksCount("exists", 1)
	metrics.RecordDatabaseQuery("exists", statusSuccess, time.Millisecond)

	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	metricNames := make(map[string]bool)
	for _, mf := range metricFamilies {
		metricNames[*mf.Name] = true
	}

	expectedMetrics := []string{
		"linkvault_http_requests_total",
		"linkvault_http_request_duration_seconds",
		"linkvault_external_calls_total",
		"linkvault_external_call_duration_seconds",
		"linkvault_pipeline_outcomes_total",
		"linkvault_pipeline_duration_seconds",
		"linkvault_metadata_strategy_attempts_total",
		"linkvault_enrichment_model_calls_total",
		"linkvault_storage_links_count",
		"linkvault_storage_database_queries_total",
		"linkvault_storage_database_query_duration_seconds",
	}

	for _, metricName := range expectedMetrics {
		assert.True(t, metricNames[metricName], "Метрика %s должна быть зарегистрирована", metricName)
	}
}
