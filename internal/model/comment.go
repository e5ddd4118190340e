package model

import "time"

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	GroupID   uint64    `gorm:"not null;index:idx_group_time_id,priority:1"`
	AuthorID  uint64    `gorm:"not null;index"`
	Body      string    `gorm:"type:text;not null"`
	Status    int       `gorm:"not null;default:0"` // 0=normal 1=deleted
	LikeCount int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"index:idx_group_time_id,priority:2,sort:desc"`
	UpdatedAt time.Time
}
