package model

import "time"

// AdminLog 管理员操作记录
type AdminLog struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index"` // 执行操作的管理员
	Action    string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

func (AdminLog) TableName() string { return "admin_logs" }

// ComplaintOutbox 投诉生命周期事件监控表
type ComplaintOutbox struct {
	ID          uint64 `gorm:"primaryKey"`
	EventType   string `gorm:"size:16;not null"` // created / status_changed / deleted
	ComplaintID uint64 `gorm:"not null;index"`
	ActorID     uint64 `gorm:"not null"`
	Payload     string `gorm:"type:json;not null"`
	Status      int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry       int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ComplaintOutbox) TableName() string { return "complaint_outbox" }
