// Package handle 新增健康检查处理器实现.
package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/relicvault/pkg/context"
)

const timeout = 2 * time.Second

// HealthDB 数据库健康检查.
func HealthDB(c *gin.Context) {
	dbc := ctxPkg.GetDBClient(c.Request.Context())
	if dbc == nil || dbc.GetDB() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": "db client not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	sqlDB, err := dbc.GetDB().DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": err.Error()})
		return
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "db", "status": "ok"})
}

// HealthFS 媒体树健康检查.
func HealthFS(c *gin.Context) {
	fsc := ctxPkg.GetFSClient(c.Request.Context())
	if fsc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "fs", "status": "unhealthy", "error": "fs client not initialized"})
		return
	}

	if err := fsc.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "fs", "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "fs", "status": "ok"})
}

// HealthMQ 消息队列健康检查.
func HealthMQ(c *gin.Context) {
	mqc := ctxPkg.GetMQClient(c.Request.Context())
	if mqc == nil { // publisher 与 subscriber 初始化在 New 中, 判空即可
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "mq", "status": "unhealthy", "error": "mq client not initialized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "mq", "status": "ok"})
}

// Healthz 总体存活检查：DB 与媒体树都可用才算健康，MQ 可选.
func Healthz(c *gin.Context) {
	dbc := ctxPkg.GetDBClient(c.Request.Context())
	fsc := ctxPkg.GetFSClient(c.Request.Context())

	if dbc == nil || dbc.GetDB() == nil || fsc == nil || fsc.HealthCheck() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
