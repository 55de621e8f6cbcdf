// Package context 拓展上下文功能，将日志、存储等集成到上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/relicvault/pkg/internal/storage"
	dbc "github.com/yeisme/relicvault/pkg/internal/storage/db"
	fsc "github.com/yeisme/relicvault/pkg/internal/storage/fs"
	kvc "github.com/yeisme/relicvault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/relicvault/pkg/internal/storage/mq"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
	ActorKey          ContextKey = "actor"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetDBClient 从 context 中获取 DB 客户端.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// GetFSClient 从 context 中获取本地媒体树客户端.
func GetFSClient(ctx context.Context) *fsc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetFSClient()
	}

	return nil
}

// GetMQClient 从 context 中获取 MQ 客户端.
func GetMQClient(ctx context.Context) *mqc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetMQClient()
	}

	return nil
}

// GetKVClient 从 context 中获取 KV 客户端.
func GetKVClient(ctx context.Context) *kvc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetKVClient()
	}

	return nil
}

// WithActor 记录操作者标识（来自认证中间件），供审计日志使用.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActor 取出操作者标识，未认证时为空字符串.
func GetActor(ctx context.Context) string {
	if actor, ok := ctx.Value(ActorKey).(string); ok {
		return actor
	}

	return ""
}

// WithTraceContext 创建带有追踪上下文的logger.
func WithTraceContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		return logger.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return logger
}
