package configs

import (
	"github.com/spf13/viper"
)

// MQType 消息队列类型.
type MQType string

const (
	MQTypeNATS MQType = "nats"

	DefaultMQURL         = "localhost:4222"
	DefaultMaxReconnects = 5                    // 默认最大重连次数
	DefaultReconnectWait = 5                    // 默认重连等待时间（秒）
	DefaultMQClientID    = "relicvault-app"     // 默认客户端ID
	DefaultMaxPingsOut   = 3                    // 默认最大ping输出次数
	DefaultPingInterval  = 20                   // 默认ping间隔（秒）
	DefaultBufferSize    = 32768                // 默认重连缓冲区大小 (32KB)
)

// MQConfig 消息队列配置.
type MQConfig struct {
	Type   MQType         `mapstructure:"type"   rule:"oneof=nats"`
	Common MQCommonConfig `mapstructure:"common"`
	NATS   MQNATSConfig   `mapstructure:"nats"`
}

// MQCommonConfig 通用MQ配置.
type MQCommonConfig struct {
	URL           string `mapstructure:"url"            rule:"hostname_port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	ClientID      string `mapstructure:"client_id"`
	MaxReconnects int    `mapstructure:"max_reconnects" rule:"min=0,max=100"`
	ReconnectWait int    `mapstructure:"reconnect_wait" rule:"min=1,max=300"`
	StrictConnect bool   `mapstructure:"strict_connect"`
	MaxPingsOut   int    `mapstructure:"max_pings_out"  rule:"min=1,max=10"`
	PingInterval  int    `mapstructure:"ping_interval"  rule:"min=1,max=300"`
	BufferSize    int    `mapstructure:"buffer_size"    rule:"min=1024,max=1048576"`
}

// MQNATSConfig NATS MQ 配置.
type MQNATSConfig struct {
	JetStreamEnabled       bool     `mapstructure:"jetstream_enabled"`
	SubjectPrefix          string   `mapstructure:"subject_prefix"`
	JetStreamAutoProvision bool     `mapstructure:"jetstream_auto_provision"`
	JetStreamTrackMsgID    bool     `mapstructure:"jetstream_track_msg_id"`
	JetStreamAckAsync      bool     `mapstructure:"jetstream_ack_async"`
	JetStreamDurablePrefix string   `mapstructure:"jetstream_durable_prefix"`
	JWT                    string   `mapstructure:"jwt"`
	NKey                   string   `mapstructure:"nkey"`
	ClusterURLs            []string `mapstructure:"cluster_urls"`
}

// GetMQType 返回当前配置的消息队列类型.
func (c *MQConfig) GetMQType() MQType {
	return c.Type
}

// setDefaults 设置MQ配置的默认值.
func (c *MQConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mq.type", MQTypeNATS)

	// Common 默认值
	v.SetDefault("mq.common.url", DefaultMQURL)
	v.SetDefault("mq.common.user", "")
	v.SetDefault("mq.common.password", "")
	v.SetDefault("mq.common.client_id", DefaultMQClientID)
	v.SetDefault("mq.common.max_reconnects", DefaultMaxReconnects)
	v.SetDefault("mq.common.reconnect_wait", DefaultReconnectWait)
	v.SetDefault("mq.common.strict_connect", false)
	v.SetDefault("mq.common.max_pings_out", DefaultMaxPingsOut)
	v.SetDefault("mq.common.ping_interval", DefaultPingInterval)
	v.SetDefault("mq.common.buffer_size", DefaultBufferSize)

	// NATS 默认值
	v.SetDefault("mq.nats.jetstream_enabled", false)
	v.SetDefault("mq.nats.subject_prefix", "relicvault.")
	v.SetDefault("mq.nats.jetstream_auto_provision", true)
	v.SetDefault("mq.nats.jetstream_track_msg_id", true)
	v.SetDefault("mq.nats.jetstream_ack_async", true)
	v.SetDefault("mq.nats.jetstream_durable_prefix", "relicvault-durable")
	v.SetDefault("mq.nats.jwt", "")
	v.SetDefault("mq.nats.nkey", "")
	v.SetDefault("mq.nats.cluster_urls", []string{})
}
