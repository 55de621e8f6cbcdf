// Package metrics 提供监控指标功能.
// 支持Prometheus标准，收集应用和媒体流水线指标.
//
// Example:
//
//	import "github.com/yeisme/relicvault/pkg/metrics"
//
//	err := metrics.InitMetrics(config.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// 记录指标
//	metrics.AssetsStaged.WithLabelValues("photo").Inc()
//	metrics.PromoteDuration.WithLabelValues("photo").Observe(0.1)
package metrics

import (
	"net/http"
	_ "net/http/pprof" // 自动注册pprof端点

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/relicvault/pkg/configs"
)

// 全局指标变量.
var (
	// RequestCounter HTTP请求计数器.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration HTTP请求持续时间.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// ActiveConnections 活跃连接数.
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_connections",
			Help: "Number of active connections",
		},
	)

	// AssetsStaged 登记到暂存树的资产计数，按种类.
	AssetsStaged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_assets_staged_total",
			Help: "Total number of media assets staged",
		},
		[]string{"kind"},
	)

	// AssetsPromoted 提升到持久树的资产计数，按种类.
	AssetsPromoted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_assets_promoted_total",
			Help: "Total number of media assets promoted to the durable tree",
		},
		[]string{"kind"},
	)

	// AssetsReplaced 被替换的资产计数，按种类.
	AssetsReplaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_assets_replaced_total",
			Help: "Total number of media assets replaced",
		},
		[]string{"kind"},
	)

	// AssetsReaped 清除（索引行删除）的资产计数，按种类.
	AssetsReaped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_assets_reaped_total",
			Help: "Total number of media assets reaped",
		},
		[]string{"kind"},
	)

	// PromoteConflicts 提升时的并发冲突计数（良性，资产已被他人处理）.
	PromoteConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "media_promote_conflicts_total",
			Help: "Total number of benign promote conflicts",
		},
	)

	// PromoteDuration 单个资产提升耗时（含缩略图生成），按种类.
	PromoteDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_promote_duration_seconds",
			Help:    "Duration of promoting a single media asset",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// OrphanFiles 提升/清除失败后遗留的孤儿文件计数.
	OrphanFiles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "media_orphan_files_total",
			Help: "Total number of files left behind by best-effort removal",
		},
	)

	// registry Prometheus注册表.
	registry = prometheus.NewRegistry()
)

// InitMetrics 初始化Metrics.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	// 注册标准收集器
	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	// 注册自定义指标
	registry.MustRegister(
		RequestCounter, RequestDuration, ActiveConnections,
		AssetsStaged, AssetsPromoted, AssetsReplaced, AssetsReaped,
		PromoteConflicts, PromoteDuration, OrphanFiles,
	)

	return nil
}

// StartMetricsServer 启动Metrics HTTP服务器.
func StartMetricsServer(config configs.MetricsConfig, debugEngine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	debugEngine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// 如果启用pprof，注册pprof端点
	if config.Pprof {
		debugEngine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	return nil
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}

// NewCounter 创建新的计数器指标.
func NewCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
	registry.MustRegister(counter)

	return counter
}

// NewGauge 创建新的仪表盘指标.
func NewGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
	registry.MustRegister(gauge)

	return gauge
}

// NewHistogram 创建新的直方图指标.
func NewHistogram(name, help string, labels []string) *prometheus.HistogramVec {
	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: prometheus.DefBuckets,
		},
		labels,
	)
	registry.MustRegister(histogram)

	return histogram
}
