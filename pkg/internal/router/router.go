// Package router 管理路由配置，将路径绑定到 handle 包的处理器.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册 /api/v1 下的全部业务路由.
func RegisterAPIRoutes(e *gin.Engine) {
	api := e.Group("/api/v1")
	{
		RegisterMediaRoutes(api)
		RegisterTreasureRoutes(api)
		RegisterSchedulerRoutes(api)
		RegisterHealthCheckRoute(api)
	}
}
