// Package tracing 提供分布式追踪功能.
// 支持OpenTelemetry标准，集成OTLP、Zipkin等后端.
//
// Example:
//
//	import "github.com/yeisme/relicvault/pkg/tracing"
//
//	err := tracing.InitTracer(config.Tracing)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer tracing.ShutdownTracer(ctx)
//
//	// 在代码中使用
//	ctx, span := tracing.StartSpan(ctx, "media.promote")
//	defer span.End()
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/relicvault/pkg/configs"
)

// tracerProvider 全局TracerProvider.
var tracerProvider *sdktrace.TracerProvider

// newExporter 按配置的类型构造 span 导出器.
func newExporter(config configs.TracingConfig) (sdktrace.SpanExporter, error) {
	switch config.ExporterType {
	case "otlp-http":
		return otlptracehttp.New(context.Background(), otlptracehttp.WithEndpointURL(config.Endpoint))
	case "otlp-grpc":
		return otlptracegrpc.New(context.Background(), otlptracegrpc.WithEndpoint(config.Endpoint))
	case "zipkin":
		return zipkin.New(config.Endpoint)
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", config.ExporterType)
	}
}

// InitTracer 初始化Tracer；未启用时为空操作.
func InitTracer(config configs.TracingConfig) error {
	if !config.Enabled {
		return nil
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := newExporter(config)
	if err != nil {
		return fmt.Errorf("failed to create %s exporter: %w", config.ExporterType, err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.SampleRate)),
	)

	otel.SetTracerProvider(tracerProvider)

	return nil
}

// ShutdownTracer 关闭Tracer，冲刷未导出的span.
func ShutdownTracer(ctx context.Context) error {
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}

	return nil
}

// StartSpan 开始一个新的Span
// 关闭时调用 span.End().
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer("relicvault").Start(ctx, spanName, opts...)
}

// GetTracer 获取Tracer.
func GetTracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
