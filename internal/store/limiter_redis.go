package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
)

const limiterKeyPrefix = "attempts:"

// redisLimiter counts attempts with INCR and starts the window with EXPIRE
// on the first hit, so all replicas share one budget per key.
type redisLimiter struct {
	client   *redis.Client
	attempts int64
	window   time.Duration
	logger   *logger.Logger
}

// NewRedisLimiter connects to redisURL and returns an [AttemptLimiter].
func NewRedisLimiter(ctx context.Context, redisURL string, cfg config.RateLimit, log *logger.Logger) (AttemptLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Err(err).Str("func", "NewRedisLimiter").Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("%w: redis: %w", ErrStoreUnavailable, err)
	}

	return newRedisLimiter(client, cfg, log), nil
}

func newRedisLimiter(client *redis.Client, cfg config.RateLimit, log *logger.Logger) *redisLimiter {
	return &redisLimiter{
		client:   client,
		attempts: int64(cfg.Attempts),
		window:   cfg.Window,
		logger:   log,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	key = limiterKeyPrefix + key

	attempts, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("%w: redis incr: %w", ErrStoreUnavailable, err)
	}
	if attempts == 1 {
		if err = l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("%w: redis expire: %w", ErrStoreUnavailable, err)
		}
	}
	if attempts <= l.attempts {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		// key without expiry after a crash between INCR and EXPIRE
		l.client.Expire(ctx, key, l.window)
		ttl = l.window
	}
	return false, ttl, nil
}

func (l *redisLimiter) Close() error {
	return l.client.Close()
}
