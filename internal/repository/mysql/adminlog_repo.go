package mysql

import (
	"Civic_Tracker/internal/model"
)

type AdminLogRepository struct{}

func (r *AdminLogRepository) Create(log *model.AdminLog) error {
	return DB.Create(log).Error
}

func (r *AdminLogRepository) List(limit int) ([]model.AdminLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var list []model.AdminLog
	err := DB.Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}
