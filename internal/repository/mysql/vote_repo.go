package mysql

import (
	"context"
	"errors"

	"Civic_Tracker/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct{}

// Cast 投票开关语义，整个读改写放在一个事务里：
//   - 无记录   -> 插入新方向
//   - 同方向   -> 删除（取消投票）
//   - 反方向   -> 原行更新方向，始终只有一行
//
// 返回结果方向，空串表示本次之后该用户无投票。
// 并发下两个插入竞争时由 (user_id, complaint_id) 唯一键兜底，
// 败者拿到 gorm.ErrDuplicatedKey，由上层转成 Conflict。
func (r *VoteRepository) Cast(ctx context.Context, userID, complaintID uint64, voteType string) (string, error) {
	var result string
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v model.Vote
		err := tx.Where("user_id = ? AND complaint_id = ?", userID, complaintID).First(&v).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&model.Vote{
				UserID:      userID,
				ComplaintID: complaintID,
				VoteType:    voteType,
			}).Error; err != nil {
				return err
			}
			result = voteType
			return nil
		}
		if err != nil {
			return err
		}
		if v.VoteType == voteType {
			// 重复同方向 -> 取消
			if err := tx.Delete(&model.Vote{}, v.ID).Error; err != nil {
				return err
			}
			result = ""
			return nil
		}
		// 翻转方向
		if err := tx.Model(&model.Vote{}).Where("id = ?", v.ID).
			Update("vote_type", voteType).Error; err != nil {
			return err
		}
		result = voteType
		return nil
	})
	return result, err
}

// ListByComplaint 读侧重建投票人集合用，一把拉全量
func (r *VoteRepository) ListByComplaint(ctx context.Context, complaintID uint64) ([]model.Vote, error) {
	var list []model.Vote
	err := DB.WithContext(ctx).Where("complaint_id = ?", complaintID).Find(&list).Error
	return list, err
}

// ListByComplaintIDs 聚合视图批量拉取
func (r *VoteRepository) ListByComplaintIDs(ctx context.Context, ids []uint64) ([]model.Vote, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []model.Vote
	err := DB.WithContext(ctx).Where("complaint_id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *VoteRepository) CountByType(ctx context.Context, complaintID uint64, voteType string) (int64, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Vote{}).
		Where("complaint_id = ? AND vote_type = ?", complaintID, voteType).
		Count(&n).Error
	return n, err
}
