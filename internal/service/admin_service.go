package service

import (
	"errors"
	"fmt"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"

	"gorm.io/gorm"
)

type AdminService struct {
	userRepo *mysql.UserRepository
	cRepo    *mysql.ComplaintRepository
	logRepo  *mysql.AdminLogRepository
}

func NewAdminService() *AdminService {
	return &AdminService{
		userRepo: &mysql.UserRepository{},
		cRepo:    &mysql.ComplaintRepository{},
		logRepo:  &mysql.AdminLogRepository{},
	}
}

func (s *AdminService) ListUsers() ([]model.User, error) {
	return s.userRepo.List()
}

// DeleteUser 硬删除用户并记一条操作日志。
// 该用户的投诉不级联删，owner 引用悬空，聚合侧以 null owner 呈现。
func (s *AdminService) DeleteUser(adminID, userID uint64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}
	if _, err := s.userRepo.Delete(userID); err != nil {
		return err
	}
	_ = s.logRepo.Create(&model.AdminLog{
		UserID: adminID,
		Action: fmt.Sprintf("Deleted user: %s (ID: %d)", user.Email, user.ID),
	})
	return nil
}

// AdminStats 全站面板计数，旧版状态折算进同义词
type AdminStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalComplaints    int64 `json:"totalComplaints"`
	ResolvedComplaints int64 `json:"resolvedComplaints"`
	ReceivedComplaints int64 `json:"receivedComplaints"`
}

func (s *AdminService) Stats() (*AdminStats, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	complaints, err := s.cRepo.Count()
	if err != nil {
		return nil, err
	}
	resolved, err := s.cRepo.CountByStatus(model.StatusResolved)
	if err != nil {
		return nil, err
	}
	received, err := s.cRepo.CountByStatus(model.StatusReceived)
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalUsers:         users,
		TotalComplaints:    complaints,
		ResolvedComplaints: resolved,
		ReceivedComplaints: received,
	}, nil
}

func (s *AdminService) Logs(limit int) ([]model.AdminLog, error) {
	return s.logRepo.List(limit)
}
