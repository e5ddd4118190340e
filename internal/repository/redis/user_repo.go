package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenMismatch    = errors.New("token mismatch")
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// 单点登录：一个用户只保留最近一次签发的 access token，
// 重新登录或改密码后旧 token 立即失效。
const (
	userTokenPrefix = "login:user:token"
	UserTokenTTL    = 30 * time.Minute
)

type UserRepository struct{}

func userTokenKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", userTokenPrefix, userID)
}

func (r *UserRepository) AddUserToken(ctx context.Context, userID uint64, token string) error {
	if err := Client.Set(ctx, userTokenKey(userID), token, UserTokenTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *UserRepository) GetUserToken(ctx context.Context, userID uint64) (string, error) {
	token, err := Client.Get(ctx, userTokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendUserToken 滑动续期，每次通过鉴权就把 TTL 重置
func (r *UserRepository) ExtendUserToken(ctx context.Context, userID uint64) error {
	if err := Client.Expire(ctx, userTokenKey(userID), UserTokenTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *UserRepository) DeleteUserToken(ctx context.Context, userID uint64) error {
	if err := Client.Del(ctx, userTokenKey(userID)).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
