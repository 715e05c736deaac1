package mysql

import (
	"Civic_Tracker/internal/model"
)

type ComplaintRepository struct{}

func (r *ComplaintRepository) Create(c *model.Complaint) error {
	return DB.Create(c).Error
}

func (r *ComplaintRepository) FindByID(id uint64) (*model.Complaint, error) {
	var c model.Complaint
	err := DB.First(&c, id).Error
	return &c, err
}

// List 全量列表，新的在前；聚合视图每次读都走这里，不做缓存
func (r *ComplaintRepository) List() ([]model.Complaint, error) {
	var list []model.Complaint
	err := DB.Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *ComplaintRepository) ListByUser(userID uint64) ([]model.Complaint, error) {
	var list []model.Complaint
	err := DB.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

// UpdateFields 单行更新，不做乐观锁，后写覆盖
func (r *ComplaintRepository) UpdateFields(id uint64, fields map[string]any) error {
	return DB.Model(&model.Complaint{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ComplaintRepository) Delete(id uint64) (int64, error) {
	tx := DB.Delete(&model.Complaint{}, id)
	return tx.RowsAffected, tx.Error
}

func (r *ComplaintRepository) Count() (int64, error) {
	var n int64
	err := DB.Model(&model.Complaint{}).Count(&n).Error
	return n, err
}

// CountByStatus 按状态计数，旧版状态值并入同义词一起算
func (r *ComplaintRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := DB.Model(&model.Complaint{}).
		Where("status IN ?", model.StatusSynonyms(status)).
		Count(&n).Error
	return n, err
}

func (r *ComplaintRepository) CountByUser(userID uint64) (int64, error) {
	var n int64
	err := DB.Model(&model.Complaint{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *ComplaintRepository) CountByUserAndStatus(userID uint64, status string) (int64, error) {
	var n int64
	err := DB.Model(&model.Complaint{}).
		Where("user_id = ? AND status IN ?", userID, model.StatusSynonyms(status)).
		Count(&n).Error
	return n, err
}
