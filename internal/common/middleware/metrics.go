package middleware

import (
	"time"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	"github.com/gin-gonic/gin"
)

type MetricsMiddleware struct {
	serviceName string
}

func NewMetricsMiddleware(serviceName string) *MetricsMiddleware {
	return &MetricsMiddleware{
		serviceName: serviceName,
	}
}

func (m *MetricsMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Шаблон маршрута, чтобы не плодить метки на каждый путь.
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.RecordHTTPRequest(
			m.serviceName,
			c.Request.Method,
			endpoint,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
