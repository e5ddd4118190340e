package model

import "time"

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"type:text"`
	LeaderID    uint64 `gorm:"not null;index"`
	// Capacity 为空表示不限人数；有值时必须为正数
	Capacity      *int  `gorm:"default:null"`
	ApprovedCount int64 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Full 判断小组是否已满员（Capacity 为空时永远不满）
func (g *Group) Full(approved int64) bool {
	return g.Capacity != nil && approved >= int64(*g.Capacity)
}
