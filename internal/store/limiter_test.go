package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
)

func TestMemoryLimiter_Window(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	l := newMemoryLimiter(config.RateLimit{Attempts: 2, Window: time.Minute}, clock)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, err := l.Allow(ctx, "login:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	now = now.Add(20 * time.Second)
	allowed, retryAfter, err := l.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 40*time.Second, retryAfter)

	// other keys have their own budget
	allowed, _, _ = l.Allow(ctx, "login:10.0.0.2")
	assert.True(t, allowed)

	now = now.Add(41 * time.Second)
	allowed, _, _ = l.Allow(ctx, "login:10.0.0.1")
	assert.True(t, allowed, "window reset")
}

func TestMemoryLimiter_SweepsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newMemoryLimiter(config.RateLimit{Attempts: 1, Window: time.Minute}, func() time.Time { return now })

	_, _, _ = l.Allow(context.Background(), "a")
	_, _, _ = l.Allow(context.Background(), "b")
	now = now.Add(2 * time.Minute)
	_, _, _ = l.Allow(context.Background(), "c")

	assert.Len(t, l.windows, 1)
}

func TestNewRedisLimiter_Errors(t *testing.T) {
	cfg := config.RateLimit{Attempts: 1, Window: time.Minute}

	_, err := NewRedisLimiter(context.Background(), "not-a-url", cfg, logger.Nop())
	assert.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err = NewRedisLimiter(ctx, "redis://127.0.0.1:1/0", cfg, logger.Nop())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
