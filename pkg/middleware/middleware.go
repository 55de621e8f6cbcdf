// Package middleware 提供 HTTP 中间件：认证、角色、日志、指标、追踪、
// 限流、熔断与依赖注入.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/configs"
	"github.com/yeisme/relicvault/pkg/internal/storage"
	"github.com/yeisme/relicvault/pkg/scheduler"
)

// Default 按固定顺序组装标准中间件链：
// 依赖注入在最外层，观测其次，限流/熔断在认证之前挡住匿名洪峰。
func Default(cfg *configs.AppConfig, mgr *storage.Manager, sched *scheduler.Scheduler) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		StorageMiddleware(mgr),
		SchedulerMiddleware(sched),
		GinLoggerMiddleware(),
		CORSMiddleware(cfg.Server),
	}

	if cfg.Metrics.Enabled {
		chain = append(chain, PrometheusMiddleware())
	}

	if cfg.Tracing.Enabled {
		chain = append(chain, TracingMiddleware())
	}

	chain = append(chain,
		RateLimitMiddleware(cfg.RateLimit),
		CircuitBreakerMiddleware(cfg.CircuitBreaker),
		AuthMiddleware(cfg.Auth),
		RoleMiddleware(),
	)

	return chain
}
