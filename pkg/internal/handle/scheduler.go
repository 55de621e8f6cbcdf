package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/middleware"
)

// ListJobs 列出已注册的定时任务及其状态.
//
//	@Summary	定时任务列表
//	@Tags		调度
//	@Success	200	{array}		object
//	@Failure	503	{object}	map[string]string
//	@Router		/api/v1/jobs [get]
func ListJobs(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not initialized"})
		return
	}

	c.JSON(http.StatusOK, sched.GetJobInfos())
}

// GetJob 查询单个定时任务.
//
//	@Summary	定时任务详情
//	@Tags		调度
//	@Param		name	path	string	true	"任务名"
//	@Success	200	{object}	object
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/jobs/{name} [get]
func GetJob(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not initialized"})
		return
	}

	info, err := sched.GetJobInfoByName(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}
