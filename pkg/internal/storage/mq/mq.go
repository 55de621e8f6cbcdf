// Package mq 基于 Watermill 封装消息发布与订阅.
// 媒体生命周期事件（staged/synced/replaced/reaped/swept）经由这里的
// Client 发布；具体传输由工厂注册，当前为 NATS JetStream.
package mq

import (
	"context"
	"fmt"
	"sync"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/relicvault/pkg/configs"
	nlog "github.com/yeisme/relicvault/pkg/log"
)

// Factory 构造一对 Publisher/Subscriber.
type Factory func(ctx context.Context, cfg *configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error)

var factories = map[configs.MQType]Factory{}

// RegisterFactory 注册指定 MQType 的工厂.
func RegisterFactory(t configs.MQType, f Factory) {
	factories[t] = f
}

// GetRegisteredMQTypes 返回已注册的 MQ 类型列表.
func GetRegisteredMQTypes() []configs.MQType {
	types := make([]configs.MQType, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}

	return types
}

// Client 封装 watermill Publisher 与 Subscriber；方法对 nil 接收者安全，
// 事件发布在未配置 MQ 时退化为报错而不是 panic.
type Client struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	router     *message.Router
	closeFunc  func()
}

// Publish 逐条发布消息到主题.
func (c *Client) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.publisher == nil {
		return fmt.Errorf("mq publisher not initialized")
	}

	for _, m := range msgs {
		if err := c.publisher.Publish(topic, m); err != nil {
			return err
		}
	}

	return nil
}

// Publisher 暴露底层 Publisher，供 queue 包的强类型事件封装使用.
func (c *Client) Publisher() message.Publisher {
	if c == nil {
		return nil
	}

	return c.publisher
}

// Subscribe 订阅主题.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.subscriber == nil {
		return nil, fmt.Errorf("mq subscriber not initialized")
	}

	return c.subscriber.Subscribe(ctx, topic)
}

// Close 依次关闭 publisher、subscriber、router 与 metrics 服务，返回最后一个错误.
func (c *Client) Close() error {
	var err error

	if c.publisher != nil {
		if e := c.publisher.Close(); e != nil {
			err = e
		}
	}

	if c.subscriber != nil {
		if e := c.subscriber.Close(); e != nil {
			err = e
		}
	}

	if c.router != nil {
		if e := c.router.Close(); e != nil {
			err = e
		}
	}

	if c.closeFunc != nil {
		c.closeFunc()
	}

	return err
}

var (
	mqOnce sync.Once
	mqInst *Client
	mqErr  error
)

// New 初始化消息队列（进程内单例）.
func New(ctx context.Context) (*Client, error) {
	mqOnce.Do(func() {
		cfg := configs.GetConfig().MQ

		factory, ok := factories[cfg.Type]
		if !ok {
			mqErr = fmt.Errorf("unsupported mq type: %s", cfg.Type)
			return
		}

		logger := &watermillLogger{l: nlog.Logger()}

		pub, sub, err := factory(ctx, &cfg, logger)
		if err != nil {
			mqErr = fmt.Errorf("init mq (%s): %w", cfg.Type, err)
			return
		}

		client := &Client{publisher: pub, subscriber: sub}

		if metricsCfg := configs.GetConfig().Metrics; metricsCfg.Enabled && metricsCfg.Endpoint != "" {
			if mqErr = client.enableMetrics(ctx, metricsCfg.Endpoint, logger); mqErr != nil {
				return
			}
		}

		mqInst = client

		nlog.Logger().Info().Str("type", string(cfg.Type)).Msg("MQ 管理器已初始化")
	})

	return mqInst, mqErr
}

// enableMetrics 用 watermill 的 prometheus builder 装饰收发两端，
// 并启动承载 router 指标的 registry HTTP 服务.
func (c *Client) enableMetrics(ctx context.Context, endpoint string, logger watermill.LoggerAdapter) error {
	registry, closeMetricsServer := metrics.CreateRegistryAndServeHTTP(endpoint)
	c.closeFunc = closeMetricsServer

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return fmt.Errorf("create router: %w", err)
	}

	go func() {
		if runErr := router.Run(ctx); runErr != nil {
			nlog.Logger().Error().Err(runErr).Msg("router run error")
		}
	}()

	builder := metrics.NewPrometheusMetricsBuilder(registry, "", "")
	builder.AddPrometheusRouterMetrics(router)

	c.router = router

	if c.publisher, err = builder.DecoratePublisher(c.publisher); err != nil {
		return fmt.Errorf("decorate publisher with metrics: %w", err)
	}

	if c.subscriber, err = builder.DecorateSubscriber(c.subscriber); err != nil {
		return fmt.Errorf("decorate subscriber with metrics: %w", err)
	}

	nlog.Logger().Info().Str("endpoint", endpoint).Msg("MQ metrics enabled")

	return nil
}
