package mq

import (
	"context"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"

	"github.com/yeisme/relicvault/pkg/configs"
)

const (
	drainTimeout   = 30 * time.Second
	flusherTimeout = 10 * time.Second
)

func init() {
	RegisterFactory(configs.MQTypeNATS, natsFactory)
}

// natsFactory 按配置建一对 NATS Publisher/Subscriber，JetStream 可选.
func natsFactory(
	ctx context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	opts := connectOptions(cfg)
	jsCfg := jetStreamConfig(cfg, logger)
	marshaler := &nats.JSONMarshaler{}
	url := serverURL(cfg)

	pub, err := nats.NewPublisher(nats.PublisherConfig{
		NatsOptions: opts,
		JetStream:   jsCfg,
		Marshaler:   marshaler,
		URL:         url,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	sub, err := nats.NewSubscriber(nats.SubscriberConfig{
		NatsOptions: opts,
		JetStream:   jsCfg,
		Unmarshaler: marshaler,
		URL:         url,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	return pub, sub, nil
}

// connectOptions 组装 NATS 连接选项，含重连与认证.
func connectOptions(cfg *configs.MQConfig) []nc.Option {
	common := cfg.Common

	opts := []nc.Option{
		nc.Name(common.ClientID),
		nc.MaxReconnects(common.MaxReconnects),
		nc.ReconnectWait(time.Duration(common.ReconnectWait) * time.Second),
		nc.PingInterval(time.Duration(common.PingInterval) * time.Second),
		nc.ReconnectBufSize(common.BufferSize),
		nc.DrainTimeout(drainTimeout),
		nc.FlusherTimeout(flusherTimeout),
	}

	if !common.StrictConnect {
		opts = append(opts, nc.RetryOnFailedConnect(true))
	}

	// 认证优先级：JWT+seed > NKey > 用户名密码
	switch {
	case cfg.NATS.JWT != "":
		opts = append(opts, nc.UserJWTAndSeed(cfg.NATS.JWT, cfg.NATS.NKey))
	case cfg.NATS.NKey != "":
		opts = append(opts, nc.Nkey(cfg.NATS.NKey, nil))
	case common.User != "":
		opts = append(opts, nc.UserInfo(common.User, common.Password))
	}

	return opts
}

// jetStreamConfig 把配置映射到 watermill-nats 的 JetStream 选项.
func jetStreamConfig(cfg *configs.MQConfig, logger watermill.LoggerAdapter) nats.JetStreamConfig {
	if !cfg.NATS.JetStreamEnabled {
		return nats.JetStreamConfig{Disabled: true}
	}

	logger.Info("JetStream 配置信息", watermill.LogFields{
		"auto_provision": cfg.NATS.JetStreamAutoProvision,
		"track_msg_id":   cfg.NATS.JetStreamTrackMsgID,
		"ack_async":      cfg.NATS.JetStreamAckAsync,
		"durable_prefix": cfg.NATS.JetStreamDurablePrefix,
		"subject_prefix": cfg.NATS.SubjectPrefix,
	})

	return nats.JetStreamConfig{
		AutoProvision: cfg.NATS.JetStreamAutoProvision,
		TrackMsgId:    cfg.NATS.JetStreamTrackMsgID,
		AckAsync:      cfg.NATS.JetStreamAckAsync,
		DurablePrefix: cfg.NATS.JetStreamDurablePrefix,
	}
}

// serverURL 单机 URL 或集群 URL 列表.
func serverURL(cfg *configs.MQConfig) string {
	if len(cfg.NATS.ClusterURLs) > 0 {
		return strings.Join(cfg.NATS.ClusterURLs, ",")
	}

	return cfg.Common.URL
}
