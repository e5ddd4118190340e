package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeSetTTL       = 24 * time.Hour
	LikeCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	LikeSetKeyPrefix = "like:set:comment"   // 某条评论已点赞的用户ID集合
	LikeCntKeyPrefix = "like:cnt:comment"   // 某条评论的点赞计数缓存
	LockKeyPrefix    = "lock:like:comment:" // 分布式锁
)

type LikeCacheRepository struct {
	likeSetTTL time.Duration
	likeCntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewLikeCacheRepository() *LikeCacheRepository {
	return &LikeCacheRepository{
		likeSetTTL: LikeSetTTL,
		likeCntTTL: LikeCntTTL,
	}
}

func (r *LikeCacheRepository) likeSetKey(commentID uint64) string {
	return fmt.Sprintf("%s:%d", LikeSetKeyPrefix, commentID)
}
func (r *LikeCacheRepository) likeCntKey(commentID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, commentID)
}

// AddLike 写路径：MySQL 写成功后再更新缓存
func (r *LikeCacheRepository) AddLike(ctx context.Context, userID, commentID uint64) error {
	k := r.likeSetKey(commentID)
	if err := Client.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, k, r.likeSetTTL).Err()

	ck := r.likeCntKey(commentID)
	if err := Client.Incr(ctx, ck).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, ck, r.likeCntTTL).Err()
	return nil
}

func (r *LikeCacheRepository) RemoveLike(ctx context.Context, userID, commentID uint64) error {
	k := r.likeSetKey(commentID)
	if err := Client.SRem(ctx, k, userID).Err(); err != nil {
		return err
	}
	ck := r.likeCntKey(commentID)
	// WATCH 防止计数减成负数
	if err := Client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, ck).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if val <= 0 {
			// 不存在或已为0，交给对账兜底
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Decr(ctx, ck)
			return nil
		})
		return err
	}, ck); err != nil {
		return err
	}
	return nil
}

// IsLikedCached 缓存查询用户是否点过赞，第二个返回值表示缓存是否命中
func (r *LikeCacheRepository) IsLikedCached(ctx context.Context, userID, commentID uint64) (bool, bool, error) {
	k := r.likeSetKey(commentID)
	exists, err := Client.Exists(ctx, k).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := Client.SIsMember(ctx, k, userID).Result()
	return b, true, err
}

// GetLikeCountCached 从缓存读点赞计数
func (r *LikeCacheRepository) GetLikeCountCached(ctx context.Context, commentID uint64) (int64, bool, error) {
	ck := r.likeCntKey(commentID)
	val, err := Client.Get(ctx, ck).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

// SetLikeCount 回填点赞计数
func (r *LikeCacheRepository) SetLikeCount(ctx context.Context, commentID uint64, cnt int64) error {
	ck := r.likeCntKey(commentID)
	return Client.Set(ctx, ck, cnt, r.likeCntTTL).Err()
}

// WarmIsLiked 惰性回填：集合已存在才写，避免无界扩张
func (r *LikeCacheRepository) WarmIsLiked(ctx context.Context, userID, commentID uint64, liked bool) {
	k := r.likeSetKey(commentID)
	if ok, _ := Client.Exists(ctx, k).Result(); ok > 0 {
		if liked {
			_ = Client.SAdd(ctx, k, userID).Err()
		} else {
			_ = Client.SRem(ctx, k, userID).Err()
		}
		_ = Client.Expire(ctx, k, r.likeSetTTL).Err()
	}
}

// DeleteCount 删除计数缓存，可选延迟二删抵消并发回填窗口
func (r *LikeCacheRepository) DeleteCount(ctx context.Context, commentID uint64, delay ...time.Duration) error {
	key := r.likeCntKey(commentID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}

// Acquire 请求分布式锁
func (l *DistLock) Acquire(ctx context.Context, commentID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, commentID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release lua 保证检查和删除的原子性
func (l *DistLock) Release(ctx context.Context, commentID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, commentID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
