package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Civic_Tracker/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	VoteSetTTL       = 24 * time.Hour
	VoteCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	VoteSetKeyPrefix = "vote:set"            // 某个投诉的已投票用户ID集合，按方向分开存
	VoteCntKeyPrefix = "vote:cnt"            // 某个投诉两个方向的票数缓存
	LockKeyPrefix    = "lock:vote:complaint" // 分布式锁
)

type VoteCacheRepository struct {
	voteSetTTL time.Duration
	voteCntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewVoteCacheRepository() *VoteCacheRepository {
	return &VoteCacheRepository{
		voteSetTTL: VoteSetTTL,
		voteCntTTL: VoteCntTTL,
	}
}

func (r *VoteCacheRepository) voteSetKey(complaintID uint64, voteType string) string {
	return fmt.Sprintf("%s:%s:%d", VoteSetKeyPrefix, voteType, complaintID)
}
func (r *VoteCacheRepository) voteCntKey(complaintID uint64, voteType string) string {
	return fmt.Sprintf("%s:%s:%d", VoteCntKeyPrefix, voteType, complaintID)
}

// WarmVoted 惰性回填集合：只在集合已存在时写，避免产生残缺集合被当作全量
// result 为当前方向，空串表示已取消投票
func (r *VoteCacheRepository) WarmVoted(ctx context.Context, userID, complaintID uint64, result string) {
	for _, vt := range []string{model.VoteUp, model.VoteDown} {
		k := r.voteSetKey(complaintID, vt)
		if ok, _ := Client.Exists(ctx, k).Result(); ok > 0 {
			if result == vt {
				_ = Client.SAdd(ctx, k, userID).Err()
			} else {
				// 先补占位成员再移除，集合清空会被 redis 回收、缓存就失效了
				pipe := Client.TxPipeline()
				pipe.SAdd(ctx, k, 0)
				pipe.SRem(ctx, k, userID)
				_, _ = pipe.Exec(ctx)
			}
			_ = Client.Expire(ctx, k, r.voteSetTTL).Err()
		}
	}
}

// IsVotedCached 返回 (方向, 是否命中缓存, err)；两个集合都存在才算命中
func (r *VoteCacheRepository) IsVotedCached(ctx context.Context, userID, complaintID uint64) (string, bool, error) {
	for _, vt := range []string{model.VoteUp, model.VoteDown} {
		k := r.voteSetKey(complaintID, vt)
		exists, err := Client.Exists(ctx, k).Result()
		if err != nil {
			return "", false, err
		}
		if exists == 0 {
			return "", false, nil
		}
		b, err := Client.SIsMember(ctx, k, userID).Result()
		if err != nil {
			return "", false, err
		}
		if b {
			return vt, true, nil
		}
	}
	return "", true, nil
}

// SetVoterSets 全量重建两个方向的集合（读侧回源后调用）
func (r *VoteCacheRepository) SetVoterSets(ctx context.Context, complaintID uint64, up, down []uint64) error {
	for vt, members := range map[string][]uint64{model.VoteUp: up, model.VoteDown: down} {
		k := r.voteSetKey(complaintID, vt)
		pipe := Client.TxPipeline()
		pipe.Del(ctx, k)
		if len(members) > 0 {
			vals := make([]any, 0, len(members))
			for _, m := range members {
				vals = append(vals, m)
			}
			pipe.SAdd(ctx, k, vals...)
		} else {
			// 空集合用占位成员标记"已回填"，读侧 SIsMember 不会误判
			pipe.SAdd(ctx, k, 0)
		}
		pipe.Expire(ctx, k, r.voteSetTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// GetCountsCached 读两个方向的票数缓存，任一缺失视为整体未命中
func (r *VoteCacheRepository) GetCountsCached(ctx context.Context, complaintID uint64) (int64, int64, bool, error) {
	up, err := Client.Get(ctx, r.voteCntKey(complaintID, model.VoteUp)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	down, err := Client.Get(ctx, r.voteCntKey(complaintID, model.VoteDown)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	return up, down, true, nil
}

// SetCounts 回填票数
func (r *VoteCacheRepository) SetCounts(ctx context.Context, complaintID uint64, up, down int64) error {
	if err := Client.Set(ctx, r.voteCntKey(complaintID, model.VoteUp), up, r.voteCntTTL).Err(); err != nil {
		return err
	}
	return Client.Set(ctx, r.voteCntKey(complaintID, model.VoteDown), down, r.voteCntTTL).Err()
}

// DeleteCounts 删除票数缓存，支持可选延迟二删，减少并发窗口脏数据
func (r *VoteCacheRepository) DeleteCounts(ctx context.Context, complaintID uint64, delay ...time.Duration) error {
	keys := []string{
		r.voteCntKey(complaintID, model.VoteUp),
		r.voteCntKey(complaintID, model.VoteDown),
	}
	if err := Client.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), keys...).Err()
		}()
	}
	return nil
}

// Acquire 请求加分布式锁
func (l *DistLock) Acquire(ctx context.Context, complaintID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, complaintID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release 用lua保证原子性
func (l *DistLock) Release(ctx context.Context, complaintID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, complaintID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
