package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 媒体资产领域 --------------------------

// AssetRef 标识一条媒体资产及其当前位置信息.
type AssetRef struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	OwnerID    uint   `json:"owner_id,omitempty"`
	StorageDir string `json:"storage_dir,omitempty"`
	FileExt    string `json:"file_ext,omitempty"`
	GroupTag   string `json:"group_tag,omitempty"`
	State      string `json:"state,omitempty"`
}

// MediaStagedPayload 文件已写入暂存树且索引行已登记.
type MediaStagedPayload struct {
	Asset AssetRef `json:"asset"`
	// Size 上传字节数
	Size int64 `json:"size,omitempty"`
	// Actor 触发上传的操作者标识
	Actor string `json:"actor,omitempty"`
}

// MediaSyncedPayload 资产已提升到持久树并绑定藏品.
type MediaSyncedPayload struct {
	Asset AssetRef `json:"asset"`
	// SyncedAt 提升完成时间
	SyncedAt time.Time `json:"synced_at"`
	// Batch 本次提升是否属于按 group_tag 的批量操作
	Batch bool `json:"batch,omitempty"`
}

// MediaReplacedPayload 已有资产的文件被新上传替换.
type MediaReplacedPayload struct {
	// Asset 被替换（保留索引行）的资产
	Asset AssetRef `json:"asset"`
	// ConsumedID 被消费的暂存资产 ID（其索引行已删除）
	ConsumedID string `json:"consumed_id"`
	// OldExt 替换前的扩展名
	OldExt string `json:"old_ext,omitempty"`
}

// MediaReapedPayload 资产索引行已删除.
type MediaReapedPayload struct {
	Asset AssetRef `json:"asset"`
	// FilesRemoved 文件删除是否全部成功（失败仅占磁盘，不影响正确性）
	FilesRemoved bool `json:"files_removed"`
}

// MediaSweptPayload 保留期清扫批次结果.
type MediaSweptPayload struct {
	// Count 本批次清扫的暂存资产数
	Count int `json:"count"`
	// Cutoff 清扫截止时间，早于该时间登记的 STAGED 资产被清除
	Cutoff time.Time `json:"cutoff"`
}

// -------------------------- 藏品领域 --------------------------

// TreasureReapedPayload 藏品删除，媒体级联清除完成.
type TreasureReapedPayload struct {
	TreasureID uint `json:"treasure_id"`
	// AssetsReaped 级联清除的媒体资产数
	AssetsReaped int `json:"assets_reaped"`
	// Failures 清除失败的资产 ID（行仍被删除的文件残留不计入）
	Failures []string `json:"failures,omitempty"`
}
