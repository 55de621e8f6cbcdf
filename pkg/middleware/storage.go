package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "github.com/yeisme/relicvault/pkg/context"
	"github.com/yeisme/relicvault/pkg/internal/storage"
)

// StorageMiddleware 把存储管理器注入 request context，供下游 service 使用.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := appctx.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
