package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/metrics"
)

// PrometheusMiddleware Prometheus 监控中间件.
// endpoint 维度使用路由模板（FullPath）而非原始 URL，避免路径参数撑爆基数。
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.RequestCounter.WithLabelValues(method, endpoint).Inc()
		metrics.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}
