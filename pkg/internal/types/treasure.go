package types

import "time"

// CreateTreasureRequest 藏品登记请求.
// group_tag 指向录入表单期间暂存的媒体；创建成功后整组提升并绑定到新藏品。
type CreateTreasureRequest struct {
	AccessionNumber string `binding:"required" json:"accession_number"`
	Name            string `binding:"required" json:"name"`
	Description     string `json:"description,omitempty"`
	GroupTag        string `json:"group_tag,omitempty"`
}

// TreasureInfo 藏品对外视图.
type TreasureInfo struct {
	ID              uint      `json:"id"`
	AccessionNumber string    `json:"accession_number"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Curator         string    `json:"curator,omitempty"`
	MediaCount      int       `json:"media_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateTreasureResponse 藏品登记响应，含随创建一并提升的媒体.
type CreateTreasureResponse struct {
	Treasure TreasureInfo     `json:"treasure"`
	Promoted []MediaAssetInfo `json:"promoted"`
}

// ListTreasuresResponse 藏品列表响应.
type ListTreasuresResponse struct {
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Items []TreasureInfo `json:"items"`
}

// DeleteTreasureResponse 藏品删除响应，汇总级联回收结果.
type DeleteTreasureResponse struct {
	ID           uint     `json:"id"`
	AssetsReaped int      `json:"assets_reaped"`
	Failures     []string `json:"failures,omitempty"` // 回收失败的资产 ID，文件可能遗留
}
