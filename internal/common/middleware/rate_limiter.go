package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type ClientRateLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiterMiddleware struct {
	clients    map[string]*ClientRateLimiter
	mu         sync.Mutex
	rate       rate.Limit
	burst      int
	expiration time.Duration
	logger     *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func NewRateLimiterMiddleware(
	requests int,
	window time.Duration,
	logger *slog.Logger,
) *RateLimiterMiddleware {
	m := &RateLimiterMiddleware{
		clients:    make(map[string]*ClientRateLimiter),
		rate:       rate.Limit(float64(requests) / window.Seconds()),
		burst:      requests,
		expiration: 1 * time.Hour,
		logger:     logger,
		done:       make(chan struct{}),
	}

	go m.cleanupClients()

	return m
}

func (m *RateLimiterMiddleware) getClientLimiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, exists := m.clients[ip]
	if !exists {
		client = &ClientRateLimiter{
			limiter:  rate.NewLimiter(m.rate, m.burst),
			lastSeen: time.Now(),
		}
		m.clients[ip] = client
	} else {
		client.lastSeen = time.Now()
	}

	return client.limiter
}

func (m *RateLimiterMiddleware) cleanupClients() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			for ip, client := range m.clients {
				if time.Since(client.lastSeen) > m.expiration {
					delete(m.clients, ip)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

func (m *RateLimiterMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !m.getClientLimiter(ip).Allow() {
			retryAfter := int(1 / float64(m.rate))
			if retryAfter < 1 {
				retryAfter = 1
			}

			m.logger.Warn("Превышен лимит запросов",
				"client_ip", ip,
				"path", c.Request.URL.Path,
			)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Header("X-RateLimit-Limit", strconv.Itoa(m.burst))
			c.Header("X-RateLimit-Remaining", "0")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})

			return
		}

		c.Next()
	}
}

func (m *RateLimiterMiddleware) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
	})

	return nil
}
