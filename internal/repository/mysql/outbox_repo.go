package mysql

import (
	"context"

	"Civic_Tracker/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct{}

// Insert 与业务写入放在同一个事务里调用
func (r *OutboxRepository) Insert(tx *gorm.DB, ob *model.ComplaintOutbox) error {
	return tx.Create(ob).Error
}

// InsertStandalone 不在事务里的写入口（删除等单行操作后追加事件）
func (r *OutboxRepository) InsertStandalone(ctx context.Context, ob *model.ComplaintOutbox) error {
	return DB.WithContext(ctx).Create(ob).Error
}

// List 取待投递的事件，按时间先后
func (r *OutboxRepository) List(ctx context.Context, limit int) ([]model.ComplaintOutbox, error) {
	var rows []model.ComplaintOutbox
	err := DB.WithContext(ctx).
		Where("status = 0").
		Order("id").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return DB.WithContext(ctx).Model(&model.ComplaintOutbox{}).
		Where("id = ?", id).
		Update("status", 1).Error
}

// MarkRetry 投递失败累加重试计数，达到上限置为 failed
func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64, maxRetry int) error {
	if err := DB.WithContext(ctx).Model(&model.ComplaintOutbox{}).
		Where("id = ?", id).
		UpdateColumn("retry", gorm.Expr("retry + 1")).Error; err != nil {
		return err
	}
	return DB.WithContext(ctx).Model(&model.ComplaintOutbox{}).
		Where("id = ? AND retry >= ?", id, maxRetry).
		UpdateColumn("status", 2).Error
}
