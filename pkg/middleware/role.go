package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Role 请求方在馆藏系统里的角色（iota 枚举，数值越大权限越高）。
//
// visitor 只能读公开资源；curator 管理自己录入的藏品与媒体；
// registrar 可跨馆员操作；admin 不受归属限制。
type Role int

const (
	RoleVisitor Role = iota + 1
	RoleCurator
	RoleRegistrar
	RoleAdmin
)

// String 返回角色的字符串表示。
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleRegistrar:
		return "registrar"
	case RoleCurator:
		return "curator"
	case RoleVisitor:
		fallthrough
	default:
		return "visitor"
	}
}

type roleKey struct{}

// parseRole 从字符串解析角色，未知值降级为 visitor。
func parseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "registrar":
		return RoleRegistrar
	case "curator":
		return RoleCurator
	default:
		return RoleVisitor
	}
}

// RoleMiddleware 解析 X-Role 并注入到 gin.Context 和 request.Context。
// 缺省角色为 visitor。
func RoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := parseRole(c.GetHeader("X-Role"))
		c.Set("role", r)
		// 同步到 request context，便于下游 service 获取
		ctx := context.WithValue(c.Request.Context(), roleKey{}, r)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetRole 从 gin.Context 获取当前请求角色。
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get("role"); ok {
		if r, ok2 := v.(Role); ok2 {
			return r
		}
	}

	if v := c.Request.Context().Value(roleKey{}); v != nil {
		if r, ok := v.(Role); ok {
			return r
		}
	}

	return RoleVisitor
}

// RoleFromContext 供 service 层在没有 gin.Context 时取角色。
func RoleFromContext(ctx context.Context) Role {
	if v := ctx.Value(roleKey{}); v != nil {
		if r, ok := v.(Role); ok {
			return r
		}
	}

	return RoleVisitor
}

// RequireMinRole 要求最小角色，不满足则返回 403。
func RequireMinRole(minRole Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) < minRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
			return
		}

		c.Next()
	}
}
