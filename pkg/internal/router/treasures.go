package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/internal/handle"
	"github.com/yeisme/relicvault/pkg/middleware"
)

// RegisterTreasureRoutes 注册藏品及其媒体绑定路由.
func RegisterTreasureRoutes(g *gin.RouterGroup) {
	treasureRoutes := g.Group("/treasures")

	{
		// ===== 藏品管理 =====
		treasureRoutes.GET("", handle.ListTreasures)
		treasureRoutes.POST("", middleware.RequireMinRole(middleware.RoleCurator), handle.CreateTreasure)

		single := treasureRoutes.Group("/:id")
		{
			single.GET("", handle.GetTreasure)
			single.DELETE("", middleware.RequireMinRole(middleware.RoleCurator), handle.DeleteTreasure)

			// ===== 藏品媒体 =====
			mediaGroup := single.Group("/media")
			{
				mediaGroup.GET("", handle.ListTreasureMedia)
				mediaGroup.POST("/promote", middleware.RequireMinRole(middleware.RoleCurator), handle.PromoteTreasureMedia)
				mediaGroup.POST("/:asset_id/replace", middleware.RequireMinRole(middleware.RoleCurator), handle.ReplaceTreasureMedia)
			}
		}
	}
}
