package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"

	"gorm.io/gorm"
)

// Actor 每个请求带的身份三元组，由鉴权中间件解析注入，不走全局状态
type Actor struct {
	ID   uint64
	Role int
	Name string
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

type ComplaintService struct {
	repo       *mysql.ComplaintRepository
	userRepo   *mysql.UserRepository
	outboxRepo *mysql.OutboxRepository
}

func NewComplaintService() *ComplaintService {
	return &ComplaintService{
		repo:       &mysql.ComplaintRepository{},
		userRepo:   &mysql.UserRepository{},
		outboxRepo: &mysql.OutboxRepository{},
	}
}

type CreateComplaintInput struct {
	Title       string
	Description string
	IssueType   string
	Priority    string
	Address     string
	Landmark    string
	Lat         *float64
	Lng         *float64
	Image       string
}

// UpdateComplaintInput 部分更新，nil 字段不动
type UpdateComplaintInput struct {
	Title       *string
	Description *string
	IssueType   *string
	Priority    *string
	Address     *string
	Landmark    *string
	Image       *string
	Status      *string
}

// CreateComplaint 创建投诉：校验必填字段，按地址匹配志愿者，初始状态 received
func (s *ComplaintService) CreateComplaint(ctx context.Context, ownerID uint64, in CreateComplaintInput) (*model.Complaint, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description required", ErrValidation)
	}

	c := &model.Complaint{
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		IssueType:   in.IssueType,
		Priority:    in.Priority,
		Address:     in.Address,
		Landmark:    in.Landmark,
		Lat:         in.Lat,
		Lng:         in.Lng,
		Image:       in.Image,
		Status:      model.StatusReceived,
		Assignee:    s.ResolveAssignee(in.Address),
	}

	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, "created", c.ID, ownerID, map[string]any{"status": c.Status, "assignee": c.Assignee})
	return c, nil
}

// ResolveAssignee 取地址第一个空白分隔的词作关键词，对志愿者 location 做
// 大小写无关的子串匹配；无地址或无命中返回 Unassigned。
// 多个志愿者命中时取第一个，这是已知的不精确启发式，不是要修的 bug。
func (s *ComplaintService) ResolveAssignee(address string) string {
	fields := strings.Fields(address)
	if len(fields) == 0 {
		return model.AssigneeNone
	}
	keyword := strings.ToLower(fields[0])
	v, err := s.userRepo.FindVolunteerByLocationKeyword(keyword)
	if err != nil {
		return model.AssigneeNone
	}
	return v.Name
}

// canUpdate 所有者、管理员、或显示名等于当前被指派人
func canUpdate(actor Actor, c *model.Complaint) bool {
	return actor.ID == c.UserID || actor.IsAdmin() || (actor.Name != "" && actor.Name == c.Assignee)
}

// canDelete 仅所有者和管理员，被指派人不能删
func canDelete(actor Actor, c *model.Complaint) bool {
	return actor.ID == c.UserID || actor.IsAdmin()
}

// UpdateComplaint 部分更新；owner 字段永不可改。状态值归一化后校验，
// 授权通过的任何一方可以设置任意合法状态，不做状态机硬卡（策略在管理端）。
func (s *ComplaintService) UpdateComplaint(ctx context.Context, actor Actor, id uint64, in UpdateComplaintInput) (*model.Complaint, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !canUpdate(actor, c) {
		return nil, fmt.Errorf("%w: not owner, admin or assignee", ErrUnauthorized)
	}

	fields := map[string]any{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title required", ErrValidation)
		}
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, fmt.Errorf("%w: description required", ErrValidation)
		}
		fields["description"] = *in.Description
	}
	if in.IssueType != nil {
		fields["issue_type"] = *in.IssueType
	}
	if in.Priority != nil {
		fields["priority"] = *in.Priority
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Landmark != nil {
		fields["landmark"] = *in.Landmark
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}

	statusChanged := false
	if in.Status != nil {
		st := model.NormalizeStatus(*in.Status)
		if !model.ValidStatus(st) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *in.Status)
		}
		if st != model.NormalizeStatus(c.Status) {
			statusChanged = true
		}
		fields["status"] = st
	}

	if len(fields) == 0 {
		return c, nil
	}
	if err := s.repo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	if statusChanged {
		s.appendEvent(ctx, "status_changed", id, actor.ID, map[string]any{
			"from": c.Status,
			"to":   fields["status"],
		})
	}
	return s.repo.FindByID(id)
}

// DeleteComplaint 硬删除；残留的 votes/comments 成为悬空引用，聚合侧容忍
func (s *ComplaintService) DeleteComplaint(ctx context.Context, actor Actor, id uint64) error {
	c, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: complaint %d", ErrNotFound, id)
		}
		return err
	}
	if !canDelete(actor, c) {
		return fmt.Errorf("%w: not owner or admin", ErrUnauthorized)
	}
	if _, err := s.repo.Delete(id); err != nil {
		return err
	}
	s.appendEvent(ctx, "deleted", id, actor.ID, map[string]any{"status": c.Status})
	return nil
}

// UserStats 个人面板计数，旧版状态折算进同义词
type UserStats struct {
	TotalIssues int64 `json:"totalIssues"`
	Received    int64 `json:"received"`
	InReview    int64 `json:"inReview"`
	Resolved    int64 `json:"resolved"`
}

func (s *ComplaintService) Stats(userID uint64) (*UserStats, error) {
	total, err := s.repo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	received, err := s.repo.CountByUserAndStatus(userID, model.StatusReceived)
	if err != nil {
		return nil, err
	}
	inReview, err := s.repo.CountByUserAndStatus(userID, model.StatusInReview)
	if err != nil {
		return nil, err
	}
	resolved, err := s.repo.CountByUserAndStatus(userID, model.StatusResolved)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		TotalIssues: total,
		Received:    received,
		InReview:    inReview,
		Resolved:    resolved,
	}, nil
}

// appendEvent 写事件表交给 relayer 异步投递，失败不影响主流程
func (s *ComplaintService) appendEvent(ctx context.Context, eventType string, complaintID, actorID uint64, payload map[string]any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = s.outboxRepo.InsertStandalone(ctx, &model.ComplaintOutbox{
		EventType:   eventType,
		ComplaintID: complaintID,
		ActorID:     actorID,
		Payload:     string(raw),
	})
}
