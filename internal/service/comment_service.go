package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"

	"gorm.io/gorm"
)

type CommentService struct {
	repo  *mysql.CommentRepository
	cRepo *mysql.ComplaintRepository
}

func NewCommentService() *CommentService {
	return &CommentService{
		repo:  &mysql.CommentRepository{},
		cRepo: &mysql.ComplaintRepository{},
	}
}

// Add 追加评论，内容去空白后不能为空
func (s *CommentService) Add(ctx context.Context, userID, complaintID uint64, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text required", ErrValidation)
	}
	if _, err := s.cRepo.FindByID(complaintID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
		}
		return nil, err
	}

	c := &model.Comment{
		UserID:      userID,
		ComplaintID: complaintID,
		Content:     text,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) ListByComplaint(ctx context.Context, complaintID uint64) ([]model.Comment, error) {
	return s.repo.ListByComplaint(ctx, complaintID)
}
