// Package log 提供基于 zerolog 的日志工具，支持 stdout/stderr 和文件输出（lumberjack 轮转）.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yeisme/relicvault/pkg/configs"
)

var (
	logger   zerolog.Logger
	initOnce sync.Once
)

// Init 初始化全局 logger.
func Init() {
	initOnce.Do(initLogger)
}

// buildWriters 组装输出端：stderr 控制台始终在，文件输出按配置追加.
func buildWriters(logCfg configs.LogConfig) []io.Writer {
	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = time.Kitchen
	})

	writers := []io.Writer{console}

	if logCfg.EnableFile {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logCfg.FilePath,
			MaxSize:    logCfg.MaxSize,
			MaxBackups: logCfg.MaxBackups,
			MaxAge:     logCfg.MaxAge,
			Compress:   logCfg.Compress,
		})
	}

	return writers
}

func initLogger() {
	cfg := configs.GetConfig()

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		fmt.Printf("invalid log level %q, defaulting to info\n", cfg.Log.Level)

		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)

	output := io.MultiWriter(buildWriters(cfg.Log)...)

	builder := zerolog.New(output).With()
	if cfg.Server.Debug {
		builder = builder.Caller().Stack()

		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger = builder.Timestamp().Logger()

	log.Logger = logger
}

// Logger 返回全局 logger，首次调用时惰性初始化.
func Logger() *zerolog.Logger {
	initOnce.Do(initLogger)

	return &logger
}

// Component 返回带 component 字段的派生 logger，各子系统（stager、synchronizer、reaper 等）用它标识日志来源.
func Component(name string) zerolog.Logger {
	initOnce.Do(initLogger)

	return logger.With().Str("component", name).Logger()
}

// GinWriter 把 Gin 文本行转发为 zerolog 事件.
type GinWriter struct {
	logger *zerolog.Logger
	level  zerolog.Level
}

func NewGinWriter(logger *zerolog.Logger, level zerolog.Level) *GinWriter {
	return &GinWriter{logger: logger, level: level}
}

func (w *GinWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))

	switch w.level {
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		w.logger.Error().Msg(msg)
	case zerolog.WarnLevel:
		w.logger.Warn().Msg(msg)
	default:
		w.logger.Info().Msg(msg)
	}

	return len(p), nil
}
