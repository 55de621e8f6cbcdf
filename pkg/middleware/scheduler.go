package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/scheduler"
)

type schedulerKey struct{}

// SchedulerMiddleware 把调度器注入到 context 中，供清扫管理接口使用.
func SchedulerMiddleware(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), schedulerKey{}, sched)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetScheduler 从 context 中获取调度器.
func GetScheduler(c *gin.Context) *scheduler.Scheduler {
	if sched, ok := c.Request.Context().Value(schedulerKey{}).(*scheduler.Scheduler); ok {
		return sched
	}

	return nil
}
