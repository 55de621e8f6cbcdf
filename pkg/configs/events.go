package configs

import "github.com/spf13/viper"

// EventsConfig 控制媒体生命周期事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled bool              `mapstructure:"enabled"` // 总开关
	Media   MediaEventsConfig `mapstructure:"media"`
}

// MediaEventsConfig 针对媒体流水线领域的事件开关。
type MediaEventsConfig struct {
	Staged   bool `mapstructure:"staged"`
	Synced   bool `mapstructure:"synced"`
	Replaced bool `mapstructure:"replaced"`
	Reaped   bool `mapstructure:"reaped"`
	Swept    bool `mapstructure:"swept"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 状态变化事件默认开启，清扫事件量大、默认关闭
	v.SetDefault("events.media.staged", true)
	v.SetDefault("events.media.synced", true)
	v.SetDefault("events.media.replaced", true)
	v.SetDefault("events.media.reaped", true)
	v.SetDefault("events.media.swept", false)
}
