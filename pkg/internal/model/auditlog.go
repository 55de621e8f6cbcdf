package model

import (
	"time"
)

// 审计动作.
const (
	AuditActionStage   = "stage"
	AuditActionPromote = "promote"
	AuditActionReplace = "replace"
	AuditActionDetach  = "detach"
	AuditActionReap    = "reap"
	AuditActionSweep   = "sweep"
)

// AuditEntry 媒体流水线操作的审计日志行.
// ID 使用 ULID，按时间可排序，便于追溯一次操作的前后顺序。
type AuditEntry struct {
	ID string `gorm:"primaryKey;size:26" json:"id"`
	// Action 见 AuditAction* 常量
	Action string `gorm:"size:32;index" json:"action"`
	// AssetID 相关资产；批量操作时每个资产一行
	AssetID string `gorm:"size:36;index" json:"asset_id"`
	// OwnerID 相关藏品，可为 0
	OwnerID uint `gorm:"index" json:"owner_id"`
	// Actor 操作者标识（请求头透传），可为空
	Actor string `gorm:"size:255;index" json:"actor"`
	// Detail 补充说明（失败原因、旧扩展名等）
	Detail string `gorm:"type:text" json:"detail"`
	// Success 操作是否成功；失败的操作同样入账
	Success bool `gorm:"index" json:"success"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名.
func (AuditEntry) TableName() string {
	return "audit_entries"
}
