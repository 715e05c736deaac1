package model

import "time"

// Comment 只追加，正常流程不修改不删除
type Comment struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index"`
	ComplaintID uint64    `gorm:"not null;index:idx_complaint_time,priority:1"`
	Content     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"index:idx_complaint_time,priority:2"`
}

func (Comment) TableName() string {
	return "comments"
}
