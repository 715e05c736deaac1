package mysql

import (
	"context"

	"Civic_Tracker/internal/model"
)

type CommentRepository struct{}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return DB.WithContext(ctx).Create(c).Error
}

// ListByComplaint 按创建时间升序，同一时刻按插入顺序（id）稳定排序
func (r *CommentRepository) ListByComplaint(ctx context.Context, complaintID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := DB.WithContext(ctx).
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *CommentRepository) ListByComplaintIDs(ctx context.Context, ids []uint64) ([]model.Comment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []model.Comment
	err := DB.WithContext(ctx).
		Where("complaint_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}
