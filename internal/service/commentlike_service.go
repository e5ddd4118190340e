package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Group_Hub/internal/repository/mysql"
	"Group_Hub/internal/repository/redis"

	"gorm.io/gorm"
)

// CommentLikeService 点赞先写库，缓存更新用分布式锁保护；
// 拿不到锁就删计数 key，交给读侧回源重建
type CommentLikeService struct {
	repo      *mysql.CommentLikeRepository
	likeCache *redis.LikeCacheRepository
	lock      *redis.DistLock
}

func NewCommentLikeService(db *gorm.DB) *CommentLikeService {
	return &CommentLikeService{
		repo:      &mysql.CommentLikeRepository{DB: db},
		likeCache: redis.NewLikeCacheRepository(),
		lock:      &redis.DistLock{RDB: redis.Client},
	}
}

func (s *CommentLikeService) Like(ctx context.Context, userID, commentID uint64) (bool, error) {
	if userID == 0 || commentID == 0 {
		return false, errors.New("invalid id")
	}

	changed, err := s.repo.Like(ctx, userID, commentID)
	if err != nil || !changed {
		if err == nil {
			s.likeCache.WarmIsLiked(ctx, userID, commentID, true)
		}
		return changed, err
	}

	token := fmt.Sprintf("%d-%d-%d", userID, commentID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, commentID, token)
	if got {
		defer s.lock.Release(ctx, commentID, token)
		if err = s.likeCache.AddLike(ctx, userID, commentID); err != nil {
			// 缓存更新失败就删 key 降级
			_ = s.likeCache.DeleteCount(ctx, commentID)
		}
	} else {
		// 拿不到锁，删计数 key 避免并发脏写
		_ = s.likeCache.DeleteCount(ctx, commentID)
	}
	return true, nil
}

func (s *CommentLikeService) Unlike(ctx context.Context, userID, commentID uint64) (bool, error) {
	if userID == 0 || commentID == 0 {
		return false, errors.New("invalid id")
	}
	changed, err := s.repo.Unlike(ctx, userID, commentID)
	if err != nil || !changed {
		if err == nil {
			s.likeCache.WarmIsLiked(ctx, userID, commentID, false)
		}
		return changed, err
	}

	token := fmt.Sprintf("%d-%d-%d", userID, commentID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, commentID, token)
	if got {
		defer s.lock.Release(ctx, commentID, token)
		// RemoveLike 内部已做 WATCH/DECR 防负
		_ = s.likeCache.RemoveLike(ctx, userID, commentID)
	} else {
		_ = s.likeCache.DeleteCount(ctx, commentID)
	}
	return true, nil
}

func (s *CommentLikeService) IsLiked(ctx context.Context, userID, commentID uint64) (bool, error) {
	if userID == 0 || commentID == 0 {
		return false, errors.New("invalid id")
	}
	// 缓存集合命中才用
	if b, ok, err := s.likeCache.IsLikedCached(ctx, userID, commentID); err == nil && ok {
		return b, nil
	}
	b, err := s.repo.IsLiked(ctx, userID, commentID)
	if err == nil {
		s.likeCache.WarmIsLiked(ctx, userID, commentID, b)
	}
	return b, err
}

// GetCountWithLock 读计数：缓存 miss 时持锁回源，防止全体打库
func (s *CommentLikeService) GetCountWithLock(ctx context.Context, userID, commentID uint64) (int64, error) {
	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, commentID); err == nil && ok {
		return v, nil
	}
	token := fmt.Sprintf("%d-%d-%d", userID, commentID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, commentID, token)

	if got {
		defer s.lock.Release(ctx, commentID, token)

		// 双检
		if v, ok, err := s.likeCache.GetLikeCountCached(ctx, commentID); err == nil && ok {
			return v, nil
		}

		v, err := s.repo.GetLikeCount(ctx, commentID)
		if err != nil {
			return 0, err
		}
		_ = s.likeCache.SetLikeCount(ctx, commentID, v)
		return v, nil
	}

	// 没拿到锁，退避后再读一次缓存
	time.Sleep(50 * time.Millisecond)
	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, commentID); err == nil && ok {
		return v, nil
	}
	return s.repo.GetLikeCount(ctx, commentID)
}
