package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobStagedSweep = "media.staged_sweep"
	JobAuditPrune  = "audit.prune"
)

// Cron 表达式常量（集中管理）.
const (
	// 每小时 17 分清扫过期暂存，错开整点高峰
	CronStagedSweep = "17 * * * *"
	// 每天 03:40 清理 90 天前的审计日志
	CronAuditPrune = "40 3 * * *"
)
