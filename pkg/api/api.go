// Package api 汇总 HTTP 接口的注册入口.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/internal/router"
)

// RegisterGroup 把全部业务路由注册到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	router.RegisterAPIRoutes(e)
	router.RegisterHealthzRoute(e)
	router.RegisterSwaggerRoute(e)

	return e
}
