package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marius851000/spritecollab-srv/internal/config"
)

// Redis is the production Store.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis and empties it. Cached entries never survive a
// server restart since they may describe stale data.
func NewRedis(ctx context.Context, host string, port int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%d", host, port),
		MaxRetries:      10,
		MinRetryBackoff: 10 * time.Millisecond,
		MaxRetryBackoff: 10 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	if err := client.FlushAll(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to flush Redis: %w", err)
	}
	config.Logger.Infoln("Connected to Redis.")
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Flush(ctx context.Context) error {
	return r.client.FlushAll(ctx).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
