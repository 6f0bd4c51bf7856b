package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ipKeyPrefix      = "ratelimit:ip:"
	visitorKeyPrefix = "ratelimit:visitor:"
)

// ConnectRedis creates a Redis client and verifies the connection with a ping.
func ConnectRedis(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connected", "addr", addr)
	return client, nil
}

// RedisLimiter keeps one expiring key per tag. SETNX makes the claim atomic,
// so unlike the inbox-backed limiter it has no window for concurrent
// duplicates to slip through.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
}

// NewRedisLimiter returns a limiter backed by the given Redis client.
func NewRedisLimiter(client *redis.Client, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, window: window}
}

// Allow claims both tags for the window. If either tag is already claimed
// the submission is rejected and nothing new is recorded.
func (l *RedisLimiter) Allow(ctx context.Context, ip, visitorID string) (bool, error) {
	ipKey := ipKeyPrefix + ip

	ok, err := l.client.SetNX(ctx, ipKey, 1, l.window).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit setnx: %w", err)
	}
	if !ok {
		return false, nil
	}

	// Visitor IDs are client-supplied and may be absent; an empty tag is
	// never matched.
	if visitorID == "" {
		return true, nil
	}

	ok, err = l.client.SetNX(ctx, visitorKeyPrefix+visitorID, 1, l.window).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit setnx: %w", err)
	}
	if !ok {
		// Visitor tag already claimed (same device behind a new address).
		// Release the IP claim taken above so the rejection records nothing.
		l.client.Del(ctx, ipKey)
		return false, nil
	}

	return true, nil
}
