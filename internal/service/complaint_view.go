package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"

	"gorm.io/gorm"
)

// OwnerView 投诉所有者的身份快照
type OwnerView struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Location     string `json:"location"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
}

type CommentView struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"userId"`
	Author    string    `json:"author"` // 作者已被删除时为空
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ComplaintView 读侧聚合：投诉 + 两个方向的投票人集合 + 带作者的评论 + owner 快照。
// 每次读都现算，不落库不缓存，没有失效问题。
type ComplaintView struct {
	ID          uint64        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	IssueType   string        `json:"issueType"`
	Priority    string        `json:"priority"`
	Address     string        `json:"address"`
	Landmark    string        `json:"landmark,omitempty"`
	Lat         *float64      `json:"lat,omitempty"`
	Lng         *float64      `json:"lng,omitempty"`
	Image       string        `json:"image,omitempty"`
	Status      string        `json:"status"`
	Assignee    string        `json:"assignee"`
	Owner       *OwnerView    `json:"owner"` // owner 已被删除时为 null
	Upvotes     []uint64      `json:"upvotes"`
	Downvotes   []uint64      `json:"downvotes"`
	Comments    []CommentView `json:"comments"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type ComplaintViewService struct {
	repo        *mysql.ComplaintRepository
	voteRepo    *mysql.VoteRepository
	commentRepo *mysql.CommentRepository
	userRepo    *mysql.UserRepository
}

func NewComplaintViewService() *ComplaintViewService {
	return &ComplaintViewService{
		repo:        &mysql.ComplaintRepository{},
		voteRepo:    &mysql.VoteRepository{},
		commentRepo: &mysql.CommentRepository{},
		userRepo:    &mysql.UserRepository{},
	}
}

// List 全部投诉的聚合视图，新的在前
func (s *ComplaintViewService) List(ctx context.Context) ([]ComplaintView, error) {
	complaints, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return s.build(ctx, complaints)
}

// ListByUser 某用户自己的投诉聚合视图
func (s *ComplaintViewService) ListByUser(ctx context.Context, userID uint64) ([]ComplaintView, error) {
	complaints, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, complaints)
}

// Get 单条详情
func (s *ComplaintViewService) Get(ctx context.Context, id uint64) (*ComplaintView, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, id)
		}
		return nil, err
	}
	views, err := s.build(ctx, []model.Complaint{*c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// build 三张表各批量拉一次再在内存里拼，避免每条投诉一轮查询
func (s *ComplaintViewService) build(ctx context.Context, complaints []model.Complaint) ([]ComplaintView, error) {
	ids := make([]uint64, 0, len(complaints))
	for _, c := range complaints {
		ids = append(ids, c.ID)
	}

	votes, err := s.voteRepo.ListByComplaintIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByComplaintIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// owner + 评论作者合并一次取
	userIDSet := make(map[uint64]struct{})
	for _, c := range complaints {
		userIDSet[c.UserID] = struct{}{}
	}
	for _, cm := range comments {
		userIDSet[cm.UserID] = struct{}{}
	}
	userIDs := make([]uint64, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}
	users, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	upvotes := make(map[uint64][]uint64)
	downvotes := make(map[uint64][]uint64)
	for _, v := range votes {
		if v.VoteType == model.VoteUp {
			upvotes[v.ComplaintID] = append(upvotes[v.ComplaintID], v.UserID)
		} else {
			downvotes[v.ComplaintID] = append(downvotes[v.ComplaintID], v.UserID)
		}
	}

	commentViews := make(map[uint64][]CommentView)
	for _, cm := range comments {
		cv := CommentView{
			ID:        cm.ID,
			UserID:    cm.UserID,
			Text:      cm.Content,
			CreatedAt: cm.CreatedAt,
		}
		if u, ok := users[cm.UserID]; ok {
			cv.Author = u.Name
		}
		commentViews[cm.ComplaintID] = append(commentViews[cm.ComplaintID], cv)
	}

	out := make([]ComplaintView, 0, len(complaints))
	for _, c := range complaints {
		view := ComplaintView{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			IssueType:   c.IssueType,
			Priority:    c.Priority,
			Address:     c.Address,
			Landmark:    c.Landmark,
			Lat:         c.Lat,
			Lng:         c.Lng,
			Image:       c.Image,
			Status:      model.NormalizeStatus(c.Status),
			Assignee:    c.Assignee,
			Upvotes:     emptyIfNil(upvotes[c.ID]),
			Downvotes:   emptyIfNil(downvotes[c.ID]),
			Comments:    commentViews[c.ID],
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		}
		if view.Comments == nil {
			view.Comments = []CommentView{}
		}
		// owner 已被删除（悬空引用）时保持 null，不让整个视图失败
		if u, ok := users[c.UserID]; ok {
			view.Owner = &OwnerView{
				ID:           u.ID,
				Name:         u.Name,
				Email:        u.Email,
				Location:     u.Location,
				ProfilePhoto: u.ProfilePhoto,
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func emptyIfNil(ids []uint64) []uint64 {
	if ids == nil {
		return []uint64{}
	}
	return ids
}
