// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"
	"time"

	ctxPkg "github.com/yeisme/relicvault/pkg/context"
	"github.com/yeisme/relicvault/pkg/internal/model"
	"github.com/yeisme/relicvault/pkg/internal/service"
	"github.com/yeisme/relicvault/pkg/internal/storage"
	"github.com/yeisme/relicvault/pkg/log"
	"github.com/yeisme/relicvault/pkg/scheduler"
)

// auditRetentionDays 审计日志保留天数.
const auditRetentionDays = 90

// sweepActor 定时任务写审计日志时使用的操作者标识.
const sweepActor = "scheduler@relicvault"

// RegisterCronJobs 配置业务定时任务：
//   - 每小时清扫保留窗口外的暂存媒体（从未提升的上传）
//   - 每天清理过期审计日志
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	if err := sched.AddCron(JobStagedSweep, CronStagedSweep, runStagedSweep, baseCtx); err != nil {
		return err
	}

	if err := sched.AddCron(JobAuditPrune, CronAuditPrune, runAuditPrune, baseCtx); err != nil {
		return err
	}

	return nil
}

// runStagedSweep 清扫保留窗口外的暂存媒体；截止时间由配置的保留期决定.
func runStagedSweep(ctx context.Context) {
	l := log.Logger().With().Str("job", JobStagedSweep).Logger()

	svc := service.NewMediaService(ctx)

	resp, err := svc.SweepStaged(ctx, sweepActor, time.Time{})
	if err != nil {
		l.Error().Err(err).Msg("staged sweep failed")
		return
	}

	if resp.Swept > 0 {
		l.Info().Int("swept", resp.Swept).Time("cutoff", resp.Cutoff).Msg("staged sweep done")
	}
}

// runAuditPrune 删除保留期外的审计日志行.
func runAuditPrune(ctx context.Context) {
	l := log.Logger().With().Str("job", JobAuditPrune).Logger()

	dbc := ctxPkg.GetDBClient(ctx)
	if dbc == nil || dbc.GetDB() == nil {
		l.Error().Msg("db not initialized")
		return
	}

	before := time.Now().UTC().AddDate(0, 0, -auditRetentionDays)

	tx := dbc.GetDB().WithContext(ctx).Where("created_at < ?", before).Delete(&model.AuditEntry{})
	if tx.Error != nil {
		l.Error().Err(tx.Error).Msg("audit prune failed")
		return
	}

	if tx.RowsAffected > 0 {
		l.Info().Int64("pruned", tx.RowsAffected).Time("before", before).Msg("audit entries pruned")
	}
}
