package model

import "time"

type CommentLike struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_comment_user"`
	CommentID uint64 `gorm:"not null;index;uniqueIndex:uk_comment_user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
