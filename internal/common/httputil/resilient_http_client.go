package httputil

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// maxBreakers ограничивает число breaker'ов одного клиента. При переполнении
// набор сбрасывается целиком.
const maxBreakers = 1024

type ClientOptions struct {
	ServiceName string
	BaseURL     string
	UserAgent   string
	Headers     map[string]string

	// BreakerKey разводит запросы по отдельным circuit breaker'ам.
	// Без него у клиента один breaker на весь сервис.
	BreakerKey func(req *http.Request) string

	// ResponseBodyLimit - максимальный размер тела ответа в байтах, 0 - без ограничения.
	ResponseBodyLimit int
}

// ByHost - отдельный breaker на каждый хост.
func ByHost(req *http.Request) string {
	return req.URL.Host
}

// ByPath - отдельный breaker на каждый путь, например на каждую модель.
func ByPath(req *http.Request) string {
	return req.URL.Path
}

type CircuitBreakerTransport struct {
	breakers          *breakerSet
	originalTransport http.RoundTripper
	logger            *slog.Logger
	serviceName       string
}

type breakerSet struct {
	mu          sync.Mutex
	cfg         *config.Config
	serviceName string
	key         func(req *http.Request) string
	breakers    map[string]*gobreaker.CircuitBreaker
}

func newBreakerSet(cfg *config.Config, serviceName string, key func(req *http.Request) string) *breakerSet {
	return &breakerSet{
		cfg:         cfg,
		serviceName: serviceName,
		key:         key,
		breakers:    make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (s *breakerSet) get(req *http.Request) (*gobreaker.CircuitBreaker, string) {
	key := ""
	if s.key != nil {
		key = s.key(req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cb, ok := s.breakers[key]; ok {
		return cb, key
	}

	if len(s.breakers) >= maxBreakers {
		clear(s.breakers)
	}

	name := s.serviceName
	if key != "" {
		name += ":" + key
	}

	cb := newCircuitBreaker(s.cfg, name)
	s.breakers[key] = cb

	return cb, key
}

// CreateResilientHTTPClient собирает resty-клиент для одного внешнего сервиса:
// таймаут на вызов, необязательные повторы и отдельный circuit breaker.
func CreateResilientHTTPClient(cfg *config.Config, logger *slog.Logger, opts ClientOptions) *resty.Client {
	client := resty.New()

	client.SetTimeout(cfg.ExternalRequestTimeout)

	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}

	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	for key, value := range opts.Headers {
		client.SetHeader(key, value)
	}

	if opts.ResponseBodyLimit > 0 {
		client.SetResponseBodyLimit(opts.ResponseBodyLimit)
	}

	if cfg.RetryCount > 0 {
		client.SetRetryCount(cfg.RetryCount)
		client.SetRetryWaitTime(cfg.RetryBackoff)
		client.SetRetryMaxWaitTime(cfg.RetryBackoff * 5)

		client.AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}

			for _, status := range cfg.RetryableStatusCodes {
				if r.StatusCode() == status {
					return true
				}
			}

			return false
		})
	}

	client.SetTransport(&CircuitBreakerTransport{
		breakers:          newBreakerSet(cfg, opts.ServiceName, opts.BreakerKey),
		originalTransport: http.DefaultTransport,
		logger:            logger,
		serviceName:       opts.ServiceName,
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		metrics.RecordExternalCall(opts.ServiceName, statusLabel(resp.StatusCode()), resp.Time())

		if logger != nil && resp.Request.Attempt > 1 {
			logger.Info("Повторный запрос к внешнему сервису",
				"service", opts.ServiceName,
				"url", resp.Request.URL,
				"attempt", resp.Request.Attempt,
				"status", resp.StatusCode(),
			)
		}

		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		metrics.RecordExternalCall(opts.ServiceName, "error", time.Since(req.Time))
	})

	return client
}

func newCircuitBreaker(cfg *config.Config, serviceName string) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        serviceName + "_circuit_breaker",
		MaxRequests: uint32(cfg.CBPermittedCallsInHalfOpen), //nolint:gosec // G115: Значение из конфига
		Interval:    time.Duration(cfg.CBSlidingWindowSize) * time.Second,
		Timeout:     cfg.CBWaitDurationInOpenState,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= uint32(cfg.CBMinimumRequiredCalls) && //nolint:gosec // G115: Значение из конфига
				failureRatio >= float64(cfg.CBFailureRateThreshold)/100.0
		},
	}

	return gobreaker.NewCircuitBreaker(settings)
}

func (t *CircuitBreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	circuitBreaker, key := t.breakers.get(req)

	result, err := circuitBreaker.Execute(func() (interface{}, error) {
		resp, err := t.originalTransport.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, &domainerrors.HTTPError{StatusCode: resp.StatusCode}
		}

		return resp, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) && t.logger != nil {
			t.logger.Warn("Circuit breaker открыт",
				"service", t.serviceName,
				"breaker", key,
				"url", req.URL.String(),
			)
		}

		return nil, err
	}

	return result.(*http.Response), nil
}

func statusLabel(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "success"
	case code >= 400 && code < 500:
		return "client_error"
	default:
		return "server_error"
	}
}
