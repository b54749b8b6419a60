package mail

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MKhiriev/go-vidshare/internal/logger"
)

// retryingSender retries transient delivery failures with exponential
// backoff starting at delay.
type retryingSender struct {
	next     Sender
	attempts int
	delay    time.Duration
	logger   *logger.Logger
}

// NewRetryingSender wraps next so that each message is tried up to attempts
// times.
func NewRetryingSender(next Sender, attempts int, delay time.Duration, log *logger.Logger) Sender {
	if attempts < 1 {
		attempts = 1
	}
	return &retryingSender{next: next, attempts: attempts, delay: delay, logger: log}
}

func (s *retryingSender) Send(ctx context.Context, msg Message) error {
	attempt := 0
	op := func() error {
		attempt++
		err := s.next.Send(ctx, msg)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		s.logger.Warn().
			Err(err).
			Str("func", "*retryingSender.Send").
			Str("to", msg.To).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Msg("mail delivery failed, retrying")
	}

	err := backoff.RetryNotify(op, s.policy(ctx), notify)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("func", "*retryingSender.Send").
			Str("to", msg.To).
			Int("attempts", attempt).
			Msg("mail delivery failed")
	}
	return err
}

func (s *retryingSender) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(s.delay),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxInterval(time.Minute),
		backoff.WithMaxElapsedTime(0),
	)
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(s.attempts-1)), ctx)
}
