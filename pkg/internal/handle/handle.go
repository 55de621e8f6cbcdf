// Package handle 提供 HTTP 请求处理器：解析请求、调用 service、映射错误码.
package handle

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appctx "github.com/yeisme/relicvault/pkg/context"
	"github.com/yeisme/relicvault/pkg/internal/media"
	"github.com/yeisme/relicvault/pkg/middleware"
	"github.com/yeisme/relicvault/pkg/rule"
)

// DefaultHandler 未实现路由的占位处理器.
func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// writeError 把流水线错误分类映射为 HTTP 状态码.
// Conflict 是并发重复操作的良性结果，用 409 告知而非 5xx。
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, media.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, media.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, media.ErrInvalidKind):
		status = http.StatusBadRequest
	case errors.Is(err, media.ErrUnsupportedOrCorruptMedia):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, media.ErrAuthorizationDenied):
		status = http.StatusForbidden
	case errors.Is(err, media.ErrStorageWriteFailed), errors.Is(err, media.ErrStorageMoveFailed):
		status = http.StatusInsufficientStorage
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// checkActor 提取操作者标识：认证中间件注入的 context 优先，
// 非 release 模式允许测试默认值。
func checkActor(c *gin.Context) (string, error) {
	actor := appctx.GetActor(c.Request.Context())
	if actor == "" && gin.Mode() != gin.ReleaseMode {
		actor = "test-curator@example.com"
	}

	actor = strings.TrimSpace(actor)

	if err := rule.ValidateVar(actor, "required,email"); err != nil {
		return "", err
	}

	return actor, nil
}

// isElevated registrar 及以上角色可跨馆员操作.
func isElevated(c *gin.Context) bool {
	return middleware.GetRole(c) >= middleware.RoleRegistrar
}

// pathUint 解析路径里的数字参数.
func pathUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})

		return 0, false
	}

	return uint(v), true
}
