package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"

	"github.com/yeisme/relicvault/pkg/configs"
)

// CircuitBreakerMiddleware 基于 gobreaker 的简单熔断.
// 5xx 视为失败；失败比例超过阈值后整条 HTTP 面熔断一段时间。
func CircuitBreakerMiddleware(cfg configs.CircuitBreakerConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	settings := gobreaker.Settings{
		Name:        "http-middlewares",
		MaxRequests: cfg.MaxRequestsInHalf,
		Interval:    time.Duration(cfg.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}

			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRate
		},
	}
	cb := gobreaker.NewCircuitBreaker(settings)

	return func(c *gin.Context) {
		_, err := cb.Execute(func() (any, error) {
			c.Next()

			if c.Writer.Status() >= http.StatusInternalServerError {
				return nil, gobreaker.ErrOpenState // 非 nil 即计入失败
			}

			return nil, nil
		})
		if err == gobreaker.ErrOpenState {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
			return
		}
	}
}
