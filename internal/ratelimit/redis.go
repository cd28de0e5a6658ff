package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "boxfinder:ratelimit:"

// Redis is a fixed-window limiter shared by every replica
type Redis struct {
	client *redis.Client
	limit  int
	now    func() time.Time
}

// NewRedis connects to redisURL and verifies the connection
func NewRedis(ctx context.Context, redisURL string, limit int) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Redis{
		client: client,
		limit:  limit,
		now:    time.Now,
	}, nil
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}

// HealthCheck pings Redis to verify connection
func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Allow increments the key's counter for the current window. The counter
// expires with the window so Redis never holds stale keys.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	if r.limit <= 0 {
		return true, nil
	}

	k := windowKey(key, r.now())

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, Window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(r.limit), nil
}

func windowKey(key string, now time.Time) string {
	return keyPrefix + key + ":" + strconv.FormatInt(now.Truncate(Window).Unix(), 10)
}
