package model

import "time"

const (
	StatusReceived = "received"
	StatusInReview = "in_review"
	StatusResolved = "resolved"
	StatusRejected = "rejected"

	// 旧版数据里的状态值，读写时都当作新值的同义词处理
	StatusLegacyPending    = "pending"
	StatusLegacyInProgress = "in_progress"

	AssigneeNone = "Unassigned"
)

type Complaint struct {
	ID          uint64 `gorm:"primaryKey;index:idx_created_id,priority:2,sort:desc"`
	UserID      uint64 `gorm:"not null;index:idx_user_time"` // 创建后不可变更
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	IssueType   string `gorm:"size:32"` // garbage/pothole/street_light/water_leakage/other
	Priority    string `gorm:"size:16"` // low/medium/high/critical
	Address     string `gorm:"size:255"`
	Landmark    string `gorm:"size:255"`
	Lat         *float64
	Lng         *float64
	Image       string    `gorm:"type:mediumtext"` // base64 或 URL
	Status      string    `gorm:"size:16;not null;default:'received';index"`
	Assignee    string    `gorm:"size:64;not null;default:'Unassigned'"`
	CreatedAt   time.Time `gorm:"index:idx_created_id,priority:1,sort:desc"`
	UpdatedAt   time.Time
}

// NormalizeStatus 把旧版状态折算成新枚举，未知值原样返回交给上层校验
func NormalizeStatus(s string) string {
	switch s {
	case StatusLegacyPending:
		return StatusReceived
	case StatusLegacyInProgress:
		return StatusInReview
	default:
		return s
	}
}

// ValidStatus 校验（归一化后的）状态是否在允许集合内
func ValidStatus(s string) bool {
	switch s {
	case StatusReceived, StatusInReview, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// StatusSynonyms 按状态过滤/计数时要同时匹配的值
func StatusSynonyms(s string) []string {
	switch s {
	case StatusReceived:
		return []string{StatusReceived, StatusLegacyPending}
	case StatusInReview:
		return []string{StatusInReview, StatusLegacyInProgress}
	default:
		return []string{s}
	}
}
