package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/internal/handle"
)

// RegisterHealthCheckRoute 注册健康检查路由.
func RegisterHealthCheckRoute(g *gin.RouterGroup) {
	healthRoutes := g.Group("/health")
	{
		healthRoutes.GET("/db", handle.HealthDB)
		healthRoutes.GET("/fs", handle.HealthFS)
		healthRoutes.GET("/mq", handle.HealthMQ)
	}
}

// RegisterHealthzRoute 注册顶层存活探针.
func RegisterHealthzRoute(e *gin.Engine) {
	e.GET("/healthz", handle.Healthz)
}
