package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/internal/handle"
	"github.com/yeisme/relicvault/pkg/middleware"
)

// RegisterMediaRoutes 注册媒体暂存与回收路由.
//
//	POST   /media        -> 上传登记（暂存）
//	DELETE /media/:id    -> 回收单条媒体
//	POST   /media/sweep  -> 手动清扫过期暂存（registrar 及以上）
func RegisterMediaRoutes(g *gin.RouterGroup) {
	mediaRoutes := g.Group("/media")

	{
		mediaRoutes.POST("", middleware.RequireMinRole(middleware.RoleCurator), handle.StageMedia)
		mediaRoutes.DELETE("/:id", middleware.RequireMinRole(middleware.RoleCurator), handle.DetachMedia)
		mediaRoutes.POST("/sweep", middleware.RequireMinRole(middleware.RoleRegistrar), handle.SweepStagedMedia)
	}
}
