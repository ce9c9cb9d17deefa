package httputil_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/httputil"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		ExternalRequestTimeout:     2 * time.Second,
		RetryCount:                 0,
		RetryBackoff:               20 * time.Millisecond,
		RetryableStatusCodes:       []int{500, 502, 503, 504},
		CBSlidingWindowSize:        10,
		CBMinimumRequiredCalls:     100,
		CBFailureRateThreshold:     100,
		CBPermittedCallsInHalfOpen: 1,
		CBWaitDurationInOpenState:  10 * time.Second,
	}
}

func TestCreateResilientHTTPClient_AppliesOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media", r.URL.Path)
		assert.Equal(t, "linkvault-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := httputil.CreateResilientHTTPClient(testConfig(), logger, httputil.ClientOptions{
		ServiceName: "options_test",
		BaseURL:     server.URL,
		UserAgent:   "linkvault-test",
		Headers:     map[string]string{"X-Api-Key": "secret"},
	})

	resp, err := client.R().Get("/media")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body()))
}

func TestCreateResilientHTTPClient_NoRetryByDefault(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := httputil.CreateResilientHTTPClient(testConfig(), logger, httputil.ClientOptions{ServiceName: "no_retry_test"})

	_, err := client.R().Get(server.URL)

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount), "Без RETRY_COUNT запрос выполняется один раз")
}

func TestCreateResilientHTTPClient_RetriesServerErrors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&requestCount, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RetryCount = 3

	client := httputil.CreateResilientHTTPClient(cfg, logger, httputil.ClientOptions{ServiceName: "retry_test"})

	resp, err := client.R().Get(server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(3), atomic.LoadInt32(&requestCount))
}

func TestCreateResilientHTTPClient_ClientErrorIsNotRetried(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RetryCount = 3

	client := httputil.CreateResilientHTTPClient(cfg, logger, httputil.ClientOptions{ServiceName: "non_retryable_test"})

	resp, err := client.R().Get(server.URL + "/api/protected")

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "unauthorized")
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount), "401 не должен повторяться")
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)

		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.CBSlidingWindowSize = 1
	cfg.CBMinimumRequiredCalls = 1

	client := httputil.CreateResilientHTTPClient(cfg, logger, httputil.ClientOptions{ServiceName: "breaker_test"})

	_, err := client.R().Get(server.URL + "/slow")
	require.Error(t, err)

	start := time.Now()
	_, err = client.R().Get(server.URL + "/slow")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, elapsed, 100*time.Millisecond, "Открытый circuit breaker отвечает без обращения к серверу")
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
}

func TestCircuitBreakerByHostIsolatesHosts(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer healthy.Close()

	cfg := testConfig()
	cfg.CBSlidingWindowSize = 60
	cfg.CBMinimumRequiredCalls = 5
	cfg.CBFailureRateThreshold = 80

	client := httputil.CreateResilientHTTPClient(cfg, logger, httputil.ClientOptions{
		ServiceName: "by_host_test",
		BreakerKey:  httputil.ByHost,
	})

	for i := 0; i < 5; i++ {
		_, err := client.R().Get(failing.URL)
		require.Error(t, err)
	}

	_, err := client.R().Get(failing.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")

	resp, err := client.R().Get(healthy.URL)

	require.NoError(t, err, "Открытый breaker одного хоста не должен влиять на другие")
	assert.Equal(t, "ok", string(resp.Body()))
}

func TestCircuitBreakerByPathIsolatesPaths(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models/broken:generateContent" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.CBMinimumRequiredCalls = 1

	client := httputil.CreateResilientHTTPClient(cfg, logger, httputil.ClientOptions{
		ServiceName: "by_path_test",
		BaseURL:     server.URL,
		BreakerKey:  httputil.ByPath,
	})

	_, err := client.R().Post("/v1/models/broken:generateContent")
	require.Error(t, err)

	_, err = client.R().Post("/v1/models/broken:generateContent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")

	resp, err := client.R().Post("/v1/models/healthy:generateContent")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestCreateResilientHTTPClient_ResponseBodyLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer server.Close()

	client := httputil.CreateResilientHTTPClient(testConfig(), logger, httputil.ClientOptions{
		ServiceName:       "body_limit_test",
		ResponseBodyLimit: 1024,
	})

	_, err := client.R().Get(server.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, resty.ErrResponseBodyTooLarge)
}
