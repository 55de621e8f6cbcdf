// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/relicvault/pkg/api"
	"github.com/yeisme/relicvault/pkg/configs"
	"github.com/yeisme/relicvault/pkg/internal/jobs"
	"github.com/yeisme/relicvault/pkg/internal/model"
	"github.com/yeisme/relicvault/pkg/internal/storage"
	"github.com/yeisme/relicvault/pkg/log"
	"github.com/yeisme/relicvault/pkg/metrics"
	"github.com/yeisme/relicvault/pkg/middleware"
	"github.com/yeisme/relicvault/pkg/scheduler"
	"github.com/yeisme/relicvault/pkg/tracing"
)

// App 组装好的应用：HTTP 引擎、存储管理器与调度器.
type App struct {
	Engine    *gin.Engine
	config    *configs.AppConfig
	manager   *storage.Manager
	scheduler *scheduler.Scheduler
}

// NewApp 初始化配置、日志、追踪、指标、存储与调度器，返回可运行的应用.
func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	log.Init()

	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// 媒体索引、藏品与审计表
	if err := manager.GetDBClient().GetDB().AutoMigrate(
		&model.MediaAsset{}, &model.Treasure{}, &model.AuditEntry{},
	); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	sched.Start()

	if !config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Default(config, manager, sched)...)

	api.RegisterGroup(engine)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine:    engine,
		config:    config,
		manager:   manager,
		scheduler: sched,
	}
}

// Run 启动 HTTP 服务，阻塞直到退出.
func (a *App) Run() error {
	defer a.Close()

	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}

// Close 释放调度器与存储资源.
func (a *App) Close() {
	if a.scheduler != nil {
		if err := a.scheduler.Stop(); err != nil {
			log.Logger().Warn().Err(err).Msg("scheduler stop failed")
		}
	}

	if a.manager != nil {
		if err := a.manager.Close(); err != nil {
			log.Logger().Warn().Err(err).Msg("storage close failed")
		}
	}
}
