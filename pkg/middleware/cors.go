package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/configs"
)

// CORSMiddleware CORS 中间件.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = append(config.AllowHeaders, "X-Role", "X-Auth-Request-Email")
	config.AllowFiles = true

	if cfg.Debug {
		config.AllowAllOrigins = true
	}

	return cors.New(config)
}
