package mysql

import (
	"Civic_Tracker/internal/model"
)

type UserRepository struct{}

func (r *UserRepository) Create(user *model.User) error {
	return DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// FindByIDs 聚合视图批量取用户快照
func (r *UserRepository) FindByIDs(ids []uint64) (map[uint64]model.User, error) {
	out := make(map[uint64]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []model.User
	if err := DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// FindVolunteerByLocationKeyword 关键词对志愿者 location 做大小写无关的子串匹配
// 多个命中时取 id 最小的一个（启发式派单，不保证唯一）
func (r *UserRepository) FindVolunteerByLocationKeyword(keyword string) (*model.User, error) {
	var user model.User
	err := DB.Where("role = ? AND LOWER(location) LIKE ?", model.RoleVolunteer, "%"+keyword+"%").
		Order("id").
		First(&user).Error
	return &user, err
}

func (r *UserRepository) List() ([]model.User, error) {
	var list []model.User
	err := DB.Order("id").Find(&list).Error
	return list, err
}

func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := DB.Model(&model.User{}).Count(&n).Error
	return n, err
}

func (r *UserRepository) UpdatePassword(user *model.User, newPassword string) error {
	return DB.Model(user).Update("password", newPassword).Error
}

// UpdateFields 资料更新，只改传入的列
func (r *UserRepository) UpdateFields(id uint64, fields map[string]any) error {
	return DB.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 硬删除；投诉的 owner 引用会悬空，聚合侧容忍
func (r *UserRepository) Delete(id uint64) (int64, error) {
	tx := DB.Delete(&model.User{}, id)
	return tx.RowsAffected, tx.Error
}
