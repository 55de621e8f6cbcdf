// Package queue 定义消息主题常量与分组，供发布/订阅使用.
package queue

// 主题命名规范：rv.<域>.<动作>[.<状态>]，尽量稳定且向后兼容.
// 域：media(媒体资产)、treasure(藏品)
// 动作/状态：staged(已登记暂存)、synced(已提升)、replaced(已替换)、
// reaped(已清除)、swept(保留期清扫)

const (
	// 媒体资产生命周期.
	TopicMediaStaged   = "rv.media.staged"   // 文件已写入暂存树且索引行已登记
	TopicMediaSynced   = "rv.media.synced"   // 资产已提升到持久树并绑定藏品
	TopicMediaReplaced = "rv.media.replaced" // 已有资产的文件被新上传替换
	TopicMediaReaped   = "rv.media.reaped"   // 资产索引行已删除（文件尽力删除）
	TopicMediaSwept    = "rv.media.swept"    // 超过保留期的暂存资产被清扫

	// 藏品领域.
	TopicTreasureReaped = "rv.treasure.reaped" // 藏品删除，媒体级联清除完成
)

// 主题分组，用于批量订阅或权限控制.
var (
	// 媒体资产相关主题集合.
	MediaTopics = []string{
		TopicMediaStaged, TopicMediaSynced, TopicMediaReplaced,
		TopicMediaReaped, TopicMediaSwept,
	}

	// 藏品相关主题集合.
	TreasureTopics = []string{
		TopicTreasureReaped,
	}
)
