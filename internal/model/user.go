package model

import "time"

// 角色为封闭枚举，授权判断统一用这里的常量
const (
	RoleUser      = 0
	RoleVolunteer = 1
	RoleAdmin     = 2
)

type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Name         string `gorm:"size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:64;not null"`
	Password     string `gorm:"size:255;not null"`
	Role         int    `gorm:"not null;default:0"` // 0=user 1=volunteer 2=admin
	Location     string `gorm:"size:128"`           // 自由文本，志愿者派单按此匹配
	ProfilePhoto string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
