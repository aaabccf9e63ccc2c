// file: repository/redis_session_registry.go

package repository

import (
	"context"
	"fmt"
	"go-auth-api/common"
	"go-auth-api/logger"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRegistry implements ISessionRegistry on a Redis set per user,
// so revocation is shared across horizontally scaled instances. Redis runs
// commands for a single key serially, which gives the same per-user
// linearizability as the in-memory registry.
type RedisSessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRegistry creates a registry whose per-user keys expire
// after ttl. The TTL is garbage collection only; token expiry itself is
// enforced by the token codec.
func NewRedisSessionRegistry(client *redis.Client, ttl time.Duration) *RedisSessionRegistry {
	return &RedisSessionRegistry{client: client, ttl: ttl}
}

func sessionKey(userID int) string {
	return fmt.Sprintf("sessions:%d", userID)
}

func (r *RedisSessionRegistry) Add(ctx context.Context, userID int, tokenID string) error {
	key := sessionKey(userID)
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, key, tokenID)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to add session to redis")
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}

func (r *RedisSessionRegistry) Contains(ctx context.Context, userID int, tokenID string) (bool, error) {
	found, err := r.client.SIsMember(ctx, sessionKey(userID), tokenID).Result()
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to check session membership in redis")
		return false, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return found, nil
}

func (r *RedisSessionRegistry) Revoke(ctx context.Context, userID int, tokenID string) error {
	if err := r.client.SRem(ctx, sessionKey(userID), tokenID).Err(); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to revoke session in redis")
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}

func (r *RedisSessionRegistry) RevokeAll(ctx context.Context, userID int) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to revoke all sessions in redis")
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}
