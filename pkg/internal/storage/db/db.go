// Package db 管理媒体索引所依赖的关系库连接.
// 方言经 init() 注册，构建标签决定编入哪些驱动.
package db

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormPrometheus "gorm.io/plugin/prometheus"

	"github.com/yeisme/relicvault/pkg/configs"
	nlog "github.com/yeisme/relicvault/pkg/log"
)

// DialectorFactory 由 DSN 构造 gorm 方言.
type DialectorFactory func(dsn string) gorm.Dialector

var (
	dialectorFactories = map[configs.DBType]DialectorFactory{}
	openMu             sync.Mutex
)

// RegisterDialectorFactory 注册数据库 dialector 工厂函数.
func RegisterDialectorFactory(dbType configs.DBType, factory DialectorFactory) {
	dialectorFactories[dbType] = factory
}

// GetRegisteredDBTypes 返回已注册的数据库类型列表.
func GetRegisteredDBTypes() []configs.DBType {
	types := make([]configs.DBType, 0, len(dialectorFactories))
	for dbType := range dialectorFactories {
		types = append(types, dbType)
	}

	return types
}

// Client 包装 GORM DB 客户端.
type Client struct {
	*gorm.DB
}

// New 按配置打开数据库：选方言、开连接、调连接池、探活，
// 指标开启时挂上 gorm 的 prometheus 插件.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().DB

	openMu.Lock()
	defer openMu.Unlock()

	dsn := cfg.GetDSN()
	if dsn == "" {
		return nil, fmt.Errorf("empty DSN for database type %s", cfg.Type)
	}

	factory, exists := dialectorFactories[cfg.Type]
	if !exists {
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	gormLogger := logger.New(
		nlog.Logger(),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(factory(dsn), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	client := &Client{DB: db}

	if configs.GetConfig().Metrics.Enabled {
		if err := client.RegisterGORMMetrics(cfg.Database); err != nil {
			return nil, err
		}

		nlog.Logger().Info().Msg("GORM metrics 注册成功")
	}

	nlog.Logger().Info().
		Str("type", cfg.GetDBType()).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("数据库连接成功")

	return client, nil
}

// GetDB 返回 GORM DB 实例.
func (c *Client) GetDB() *gorm.DB {
	return c.DB
}

const gormMetricsRefreshSeconds = 15

// RegisterGORMMetrics 挂载 gorm 的 prometheus 插件；不起独立服务，
// 指标并入应用自己的 registry.
func (c *Client) RegisterGORMMetrics(dbName string) error {
	promConfig := gormPrometheus.Config{
		DBName:          dbName,
		RefreshInterval: gormMetricsRefreshSeconds,
		StartServer:     false,
	}

	if err := c.Use(gormPrometheus.New(promConfig)); err != nil {
		return fmt.Errorf("register gorm prometheus plugin: %w", err)
	}

	return nil
}
