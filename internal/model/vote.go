package model

import "time"

const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Vote 每个 (user, complaint) 至多一行，方向翻转在原行上更新
type Vote struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_user_complaint"`
	ComplaintID uint64 `gorm:"not null;index;uniqueIndex:uk_user_complaint"`
	VoteType    string `gorm:"size:8;not null"` // upvote / downvote
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Vote) TableName() string {
	return "votes"
}
