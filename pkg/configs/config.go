// Package configs 管理应用程序配置，包括数据库、媒体存储树、消息队列等配置信息.
// configs 包支持多种配置格式（YAML、JSON、TOML、dotenv）并启用热重载.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
//
// Example accessing Media config:
//
//	config := configs.GetConfig()
//	mediaConfig := config.Media
//	fmt.Println("staging root:", mediaConfig.StagingRoot())
package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppVersion 应用版本号，构建时可通过 ldflags 覆盖.
var AppVersion = "1.0.0"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		DB             DBConfig             `mapstructure:"db"`              // 数据库配置（媒体资产索引）
		Media          MediaConfig          `mapstructure:"media"`           // 媒体存储树配置（暂存/持久目录）
		MQ             MQConfig             `mapstructure:"mq"`              // 消息队列配置
		KV             KVConfig             `mapstructure:"kv"`              // KV 缓存配置
		Server         ServerConfig         `mapstructure:"server"`          // 服务器配置
		Log            LogConfig            `mapstructure:"log"`             // 日志配置
		Auth           AuthConfig           `mapstructure:"auth"`            // 认证配置
		Events         EventsConfig         `mapstructure:"events"`          // 事件发布开关
		Metrics        MetricsConfig        `mapstructure:"metrics"`         // 监控指标配置
		Tracing        TracingConfig        `mapstructure:"tracing"`         // 分布式追踪配置
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`      // 速率限制配置
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"` // 熔断器配置
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// InitConfig 加载应用程序配置，支持多种格式(yaml、json、toml、dotenv)并启用热重载.
func InitConfig(path string) error {
	appViper = viper.New()
	// 设置默认值
	setAllDefaults(appViper)

	// path 可以是配置文件，也可以是包含 config.* 的目录
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(filepath.Join(path, "configs"))

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("RELICVAULT")

	if err := appViper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults 设置所有配置段的默认值.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig  ServerConfig
		dbConfig      DBConfig
		mediaConfig   MediaConfig
		mqConfig      MQConfig
		kvConfig      KVConfig
		logConfig     LogConfig
		authConfig    AuthConfig
		eventsConfig  EventsConfig
		metricsConfig MetricsConfig
		tracingConfig TracingConfig
		rlConfig      RateLimitConfig
		cbConfig      CircuitBreakerConfig
	)

	serverConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	mediaConfig.setDefaults(v)
	mqConfig.setDefaults(v)
	kvConfig.setDefaults(v)
	logConfig.setDefaults(v)
	authConfig.setDefaults(v)
	eventsConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
	rlConfig.setDefaults(v)
	cbConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

// GetViper 返回全局 Viper 实例.
func GetViper() *viper.Viper {
	return appViper
}
