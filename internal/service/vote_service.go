package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"
	"Civic_Tracker/internal/repository/redis"

	"gorm.io/gorm"
)

// countEvictDelay 降级删计数后的二删间隔
const countEvictDelay = 500 * time.Millisecond

type VoteService struct {
	repo      *mysql.VoteRepository
	cRepo     *mysql.ComplaintRepository
	voteCache *redis.VoteCacheRepository
	lock      *redis.DistLock
}

func NewVoteService() *VoteService {
	return &VoteService{
		repo:      &mysql.VoteRepository{},
		cRepo:     &mysql.ComplaintRepository{},
		voteCache: redis.NewVoteCacheRepository(),
		lock:      &redis.DistLock{RDB: redis.Client},
	}
}

// Cast 投票开关：同方向再投一次取消，反方向翻转，只保留一行。
// 写库成功后优先加锁强更新票数缓存；拿不到锁则删计数Key，交给读侧回填。
// 唯一键竞争败者拿到 Conflict，客户端重试一次即可。
func (s *VoteService) Cast(ctx context.Context, userID, complaintID uint64, voteType string) (string, error) {
	if voteType != model.VoteUp && voteType != model.VoteDown {
		return "", fmt.Errorf("%w: invalid vote type %q", ErrValidation, voteType)
	}
	if _, err := s.cRepo.FindByID(complaintID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
		}
		return "", err
	}

	result, err := s.repo.Cast(ctx, userID, complaintID, voteType)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发插入竞争，唯一键兜底
			return "", fmt.Errorf("%w: concurrent vote", ErrConflict)
		}
		return "", err
	}

	// 集合惰性回填（只更新已存在的集合），失败忽略
	s.voteCache.WarmVoted(ctx, userID, complaintID, result)

	// 计数：拿到锁就回源重建，拿不到就删Key降级（延迟二删兜住窗口内的脏回填）
	token := fmt.Sprintf("%d-%d-%d", userID, complaintID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, complaintID, token)
	if got {
		defer s.lock.Release(ctx, complaintID, token)
		if err := s.rebuildCounts(ctx, complaintID); err != nil {
			_ = s.voteCache.DeleteCounts(ctx, complaintID, countEvictDelay)
		}
	} else {
		_ = s.voteCache.DeleteCounts(ctx, complaintID, countEvictDelay)
	}
	return result, nil
}

// Current 当前用户对某投诉的投票方向，空串为未投。
// 缓存 miss 时回源整张投票表，拿到锁就顺手重建两个方向的投票人集合；
// 此后读走缓存，写路径的 WarmVoted 负责惰性维护。
func (s *VoteService) Current(ctx context.Context, userID, complaintID uint64) (string, error) {
	if vt, ok, err := s.voteCache.IsVotedCached(ctx, userID, complaintID); err == nil && ok {
		return vt, nil
	}

	votes, err := s.repo.ListByComplaint(ctx, complaintID)
	if err != nil {
		return "", err
	}
	var up, down []uint64
	var current string
	for _, v := range votes {
		if v.VoteType == model.VoteUp {
			up = append(up, v.UserID)
		} else {
			down = append(down, v.UserID)
		}
		if v.UserID == userID {
			current = v.VoteType
		}
	}

	token := fmt.Sprintf("set-%d-%d", complaintID, time.Now().UnixNano())
	if got, _ := s.lock.Acquire(ctx, complaintID, token); got {
		defer s.lock.Release(ctx, complaintID, token)
		_ = s.voteCache.SetVoterSets(ctx, complaintID, up, down)
	}
	return current, nil
}

// Counts 两个方向的票数。先读缓存，miss 时加锁单兵回源，防止全体打DB
func (s *VoteService) Counts(ctx context.Context, complaintID uint64) (int64, int64, error) {
	if up, down, ok, err := s.voteCache.GetCountsCached(ctx, complaintID); err == nil && ok {
		return up, down, nil
	}

	token := fmt.Sprintf("cnt-%d-%d", complaintID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, complaintID, token)
	if got {
		defer s.lock.Release(ctx, complaintID, token)

		// 双重检查
		if up, down, ok, err := s.voteCache.GetCountsCached(ctx, complaintID); err == nil && ok {
			return up, down, nil
		}
		if err := s.rebuildCounts(ctx, complaintID); err != nil {
			return 0, 0, err
		}
		up, down, _, err := s.voteCache.GetCountsCached(ctx, complaintID)
		return up, down, err
	}

	// 没拿到锁，短暂退避后再读一次缓存
	time.Sleep(50 * time.Millisecond)
	if up, down, ok, err := s.voteCache.GetCountsCached(ctx, complaintID); err == nil && ok {
		return up, down, nil
	}

	// 仍miss，有限回源一次
	up, err := s.repo.CountByType(ctx, complaintID, model.VoteUp)
	if err != nil {
		return 0, 0, err
	}
	down, err := s.repo.CountByType(ctx, complaintID, model.VoteDown)
	return up, down, err
}

func (s *VoteService) rebuildCounts(ctx context.Context, complaintID uint64) error {
	up, err := s.repo.CountByType(ctx, complaintID, model.VoteUp)
	if err != nil {
		return err
	}
	down, err := s.repo.CountByType(ctx, complaintID, model.VoteDown)
	if err != nil {
		return err
	}
	return s.voteCache.SetCounts(ctx, complaintID, up, down)
}
