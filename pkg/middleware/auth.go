package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/configs"
	appctx "github.com/yeisme/relicvault/pkg/context"
)

// AuthMiddleware 基于 oauth2-proxy 注入的请求头做统一身份认证校验，
// 并把操作者标识写入 request context 供审计与归属检查使用。
//   - 优先读取 X-Auth-Request-Email / X-Forwarded-Email
//   - 支持通过配置跳过某些路径（如 /metrics、/healthz）
//   - 开发模式可允许 query user 兜底（由 configs.auth.dev_allow_query 控制）.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		actor := strings.TrimSpace(c.GetHeader("X-Auth-Request-Email"))
		if actor == "" {
			actor = strings.TrimSpace(c.GetHeader("X-Forwarded-Email"))
		}

		if actor == "" && conf.DevAllowQuery {
			actor = strings.TrimSpace(c.Query("user"))
		}

		if actor == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

			return
		}

		c.Request = c.Request.WithContext(appctx.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
