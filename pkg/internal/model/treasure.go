package model

import (
	"time"

	"gorm.io/gorm"
)

// Treasure 藏品记录，媒体资产的归属实体.
type Treasure struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// AccessionNumber 入藏编号，馆内唯一
	AccessionNumber string `gorm:"size:64;uniqueIndex" json:"accession_number"`
	Name            string `gorm:"size:255;index"      json:"name"`
	Description     string `gorm:"type:text"           json:"description"`
	// Curator 责任保管人标识
	Curator string `gorm:"size:255;index" json:"curator"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名.
func (Treasure) TableName() string {
	return "treasures"
}
