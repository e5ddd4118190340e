package model

import "time"

const (
	ApplicationPending  int8 = 0
	ApplicationApproved int8 = 1
	ApplicationRejected int8 = 2
)

// Application 入组申请，(group_id, user_id) 全局唯一，与状态无关
type Application struct {
	ID        uint64 `gorm:"primaryKey"`
	GroupID   uint64 `gorm:"not null;index;uniqueIndex:uk_group_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_group_user"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=approved,2=rejected'"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time
}

// ApplicationOutbox 申请生命周期事件监控表
type ApplicationOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // applied / approved / rejected / cancelled
	UserID    uint64 `gorm:"not null"`
	GroupID   uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ApplicationOutbox) TableName() string { return "application_outbox" }
