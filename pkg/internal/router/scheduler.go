package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/internal/handle"
	"github.com/yeisme/relicvault/pkg/middleware"
)

// RegisterSchedulerRoutes 注册定时任务管理路由（registrar 及以上）.
func RegisterSchedulerRoutes(g *gin.RouterGroup) {
	jobRoutes := g.Group("/jobs", middleware.RequireMinRole(middleware.RoleRegistrar))
	{
		jobRoutes.GET("", handle.ListJobs)
		jobRoutes.GET("/:name", handle.GetJob)
	}
}
