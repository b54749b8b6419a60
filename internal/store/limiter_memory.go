package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/config"
)

// memoryLimiter is the single-process [AttemptLimiter] used when no Redis
// URL is configured.
type memoryLimiter struct {
	mu        sync.Mutex
	windows   map[string]attemptWindow
	attempts  int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type attemptWindow struct {
	count   int
	resetAt time.Time
}

// NewMemoryLimiter returns an in-process [AttemptLimiter].
func NewMemoryLimiter(cfg config.RateLimit) AttemptLimiter {
	return newMemoryLimiter(cfg, time.Now)
}

func newMemoryLimiter(cfg config.RateLimit, now func() time.Time) *memoryLimiter {
	return &memoryLimiter{
		windows:  make(map[string]attemptWindow),
		attempts: cfg.Attempts,
		window:   cfg.Window,
		now:      now,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = attemptWindow{resetAt: now.Add(l.window)}
	}
	w.count++
	l.windows[key] = w

	if w.count <= l.attempts {
		return true, 0, nil
	}
	return false, w.resetAt.Sub(now), nil
}

// sweep drops expired windows at most once per window length.
func (l *memoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}

func (l *memoryLimiter) Close() error {
	return nil
}
