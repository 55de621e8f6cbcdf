// Package scheduler 封装 gocron/v2，供媒体保留期清扫等业务定时任务使用.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yeisme/relicvault/pkg/log"
)

// refreshInterval 后台刷新 NextRun/LastRun 的周期.
const refreshInterval = 10 * time.Second

// JobStatus 表示任务的状态类型.
type JobStatus string

const (
	StatusScheduled JobStatus = "scheduled" // 等待下次触发
	StatusRunning   JobStatus = "running"   // 正在执行
	StatusError     JobStatus = "error"     // 上次执行出错
)

// JobInfo 暴露给监控接口的任务快照.
type JobInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CronExpr    string    `json:"cron_expr"`
	NextRun     time.Time `json:"next_run"`
	LastRun     time.Time `json:"last_run"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	Status      JobStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Scheduler 以任务名称为主键管理 gocron 任务及其快照.
type Scheduler struct {
	inner  gocron.Scheduler
	jobs   map[string]gocron.Job
	infos  map[string]*JobInfo
	names  map[uuid.UUID]string
	mu     sync.RWMutex
	logger *zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler 创建调度器并启动后台快照刷新.
func NewScheduler() (*Scheduler, error) {
	inner, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		inner:  inner,
		jobs:   make(map[string]gocron.Job),
		infos:  make(map[string]*JobInfo),
		names:  make(map[uuid.UUID]string),
		logger: log.Logger(),
		ctx:    ctx,
		cancel: cancel,
	}

	go s.refreshLoop()

	return s, nil
}

// AddCron 按 cron 表达式注册任务；同名任务只允许注册一次.
// 传入的 ctx 会透传给任务函数（携带 storage manager 等依赖）.
func (s *Scheduler) AddCron(name string, cronExpr string, job func(ctx context.Context), ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	// 包装出 panic 保护与状态记录
	run := func(ctx context.Context) {
		s.setStatus(name, StatusRunning, "")

		defer func() {
			if r := recover(); r != nil {
				s.setStatus(name, StatusError, fmt.Sprintf("panic in job: %v", r))
				s.logger.Error().Str("job", name).Interface("panic", r).Msg("job panicked")
			}
		}()

		job(ctx)

		s.setStatus(name, StatusScheduled, "")
		s.markSuccess(name)
	}

	j, err := s.inner.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(run, ctx),
		gocron.WithName(name),
		gocron.WithEventListeners(
			gocron.AfterJobRuns(func(jobID uuid.UUID, jobName string) {
				s.mu.Lock()
				defer s.mu.Unlock()

				if info, ok := s.infos[jobName]; ok {
					info.LastRun = time.Now()
					info.UpdatedAt = time.Now()
				}
			}),
		),
	)
	if err != nil {
		return err
	}

	now := time.Now()
	nextRun, _ := j.NextRun()

	s.jobs[name] = j
	s.names[j.ID()] = name
	s.infos[name] = &JobInfo{
		ID:        j.ID().String(),
		Name:      name,
		CronExpr:  cronExpr,
		NextRun:   nextRun,
		Status:    StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.logger.Info().Str("job", name).Str("cron", cronExpr).Msg("cron job registered")

	return nil
}

// RemoveJobByName 注销任务并清理快照.
func (s *Scheduler) RemoveJobByName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %q not registered", name)
	}

	if err := s.inner.RemoveJob(job.ID()); err != nil {
		return err
	}

	delete(s.jobs, name)
	delete(s.infos, name)
	delete(s.names, job.ID())

	s.logger.Info().Str("job", name).Msg("cron job removed")

	return nil
}

// GetJobInfoByName 返回单个任务的快照.
func (s *Scheduler) GetJobInfoByName(name string) (*JobInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, exists := s.infos[name]
	if !exists {
		return nil, fmt.Errorf("job %q not registered", name)
	}

	return info, nil
}

// GetJobInfos 返回全部任务快照，供监控接口使用.
func (s *Scheduler) GetJobInfos() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobInfo, 0, len(s.infos))
	for _, info := range s.infos {
		out = append(out, *info)
	}

	return out
}

// Start 启动调度器.
func (s *Scheduler) Start() {
	s.logger.Info().Msg("starting scheduler")
	s.inner.Start()
}

// Stop 停止后台刷新并关闭调度器.
func (s *Scheduler) Stop() error {
	s.logger.Info().Msg("stopping scheduler")
	s.cancel()

	return s.inner.Shutdown()
}

func (s *Scheduler) refreshLoop() {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.refreshAll()
		}
	}
}

// refreshAll 从 gocron 拉取每个任务的最新调度时间.
func (s *Scheduler) refreshAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, job := range s.jobs {
		info := s.infos[name]
		if info == nil {
			continue
		}

		if nextRun, err := job.NextRun(); err == nil {
			info.NextRun = nextRun
		}

		if lastRun, err := job.LastRun(); err == nil {
			info.LastRun = lastRun
		}

		info.Status = StatusScheduled
		info.UpdatedAt = time.Now()
	}
}

func (s *Scheduler) setStatus(name string, status JobStatus, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, ok := s.infos[name]; ok {
		info.Status = status
		info.Error = errMsg
		info.UpdatedAt = time.Now()
	}
}

func (s *Scheduler) markSuccess(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, ok := s.infos[name]; ok {
		info.LastSuccess = time.Now()
		info.UpdatedAt = time.Now()
	}
}
