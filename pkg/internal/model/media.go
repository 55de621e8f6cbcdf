// Package model 定义持久化模型：媒体资产索引、藏品记录与审计日志.
package model

import (
	"time"
)

// 媒体资产的同步状态.
const (
	// MediaStateStaged 已登记、文件位于暂存树，尚未绑定藏品.
	MediaStateStaged = "STAGED"
	// MediaStateSynced 已绑定藏品，文件位于持久树.
	MediaStateSynced = "SYNCED"
)

// 媒体种类，决定路径布局与处理策略.
const (
	MediaKindProfile      = "profile"
	MediaKindPhoto        = "photo"
	MediaKindVideo        = "video"
	MediaKindContent      = "content"
	MediaKindConservation = "conservation"
)

// MediaAsset 媒体资产索引行，是文件生命周期的权威记录.
// 不存在对应行的文件视为不存在（孤儿文件只占磁盘，不影响正确性）。
type MediaAsset struct {
	// ID 资产主键（UUIDv4 字符串），同时是磁盘文件的基础名
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// StorageDir 随机生成的目录段（sha256 hex），打散目录避免单目录过大
	StorageDir string `gorm:"size:64;index" json:"storage_dir"`
	// Kind 媒体种类，见 MediaKind* 常量
	Kind string `gorm:"size:32;index:idx_kind_owner" json:"kind"`
	// OwnerID 绑定的藏品 ID；STAGED 状态下为 0
	OwnerID uint `gorm:"index:idx_kind_owner;index" json:"owner_id"`
	// StagedBy 上传该文件的账户标识，仅用于归属检查与孤儿清扫
	StagedBy string `gorm:"size:255;index" json:"staged_by"`
	// FileExt 带点的扩展名（".jpg"），嗅探修正后以此为准
	FileExt string `gorm:"size:16" json:"file_ext"`
	// GroupTag 批量提升的分组标签，同一次录入的资产共享
	GroupTag string `gorm:"size:64;index" json:"group_tag"`
	// State STAGED 或 SYNCED；删除即移除整行，没有 DELETED 状态
	State string `gorm:"size:16;index" json:"state"`
	// SyncedAt 提升完成时间，STAGED 状态下为零值
	SyncedAt *time.Time `gorm:"index" json:"synced_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名.
func (MediaAsset) TableName() string {
	return "media_assets"
}

// FileName 返回磁盘上的文件名（主文件，不含衍生副本后缀）.
func (m *MediaAsset) FileName() string {
	return m.ID + m.FileExt
}

// IsImageKind 判断某种类是否属于图像族（需要生成缩略副本）.
func IsImageKind(kind string) bool {
	switch kind {
	case MediaKindProfile, MediaKindPhoto, MediaKindConservation:
		return true
	default:
		return false
	}
}

// ValidKind 判断字符串是否是已知媒体种类.
func ValidKind(kind string) bool {
	switch kind {
	case MediaKindProfile, MediaKindPhoto, MediaKindVideo,
		MediaKindContent, MediaKindConservation:
		return true
	default:
		return false
	}
}
