// Package types 定义 HTTP 层的请求与响应结构.
package types

import "time"

// StageMediaForm 上传登记表单（multipart，文件在 file 字段）.
type StageMediaForm struct {
	Kind     string `binding:"required" form:"kind"` // 媒体种类：profile/photo/video/content/conservation
	GroupTag string `form:"group_tag"`               // 可选：批量提升的分组标签
}

// MediaAssetInfo 单条媒体资产的对外视图.
type MediaAssetInfo struct {
	ID           string     `json:"id"`
	Kind         string     `json:"kind"`
	State        string     `json:"state"`
	OwnerID      uint       `json:"owner_id,omitempty"`
	GroupTag     string     `json:"group_tag,omitempty"`
	FileExt      string     `json:"file_ext"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"` // 仅图像族
	SyncedAt     *time.Time `json:"synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// StageMediaResponse 上传登记响应.
type StageMediaResponse struct {
	Asset MediaAssetInfo `json:"asset"`
}

// PromoteMediaRequest 提升请求：单个资产或整个分组二选一.
type PromoteMediaRequest struct {
	AssetID  string `binding:"required_without=GroupTag" json:"asset_id,omitempty"`
	GroupTag string `binding:"required_without=AssetID"  json:"group_tag,omitempty"`
	Kind     string `json:"kind,omitempty"` // 可选：限定分组内的种类
}

// PromoteMediaResponse 提升响应.
type PromoteMediaResponse struct {
	Promoted []MediaAssetInfo `json:"promoted"`
}

// ReplaceMediaRequest 替换请求：用新的暂存资产替换目标资产的内容.
type ReplaceMediaRequest struct {
	NewAssetID string `binding:"required" json:"new_asset_id"`
}

// ReplaceMediaResponse 替换响应.
type ReplaceMediaResponse struct {
	Asset MediaAssetInfo `json:"asset"`
}

// ListMediaResponse 藏品媒体列表响应.
type ListMediaResponse struct {
	Total int              `json:"total"`
	Items []MediaAssetInfo `json:"items"`
}

// ReapMediaResponse 单条回收响应.
type ReapMediaResponse struct {
	ID           string `json:"id"`
	FilesRemoved int    `json:"files_removed"`
}

// SweepRequest 暂存清扫请求；不带参数时使用配置的保留窗口.
type SweepRequest struct {
	Before string `json:"before,omitempty"` // RFC3339
	Hours  int    `json:"hours,omitempty"`  // 清理 N 小时前登记的
}

// ParseCutoff 返回解析后的截止时间与是否提供.
func (r *SweepRequest) ParseCutoff() (time.Time, bool) {
	if r.Before != "" {
		if t, err := time.Parse(time.RFC3339, r.Before); err == nil {
			return t, true
		}
	}

	if r.Hours > 0 {
		return time.Now().UTC().Add(-time.Duration(r.Hours) * time.Hour), true
	}

	return time.Time{}, false
}

// SweepResponse 清扫响应.
type SweepResponse struct {
	Swept  int       `json:"swept"`
	Cutoff time.Time `json:"cutoff"`
}
