package mongo

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/undy45/medicine-initdb/core/logger"
)

// RetryPolicy is a constant-interval retry policy. The interval never grows.
type RetryPolicy struct {
	Interval time.Duration
	// MaxAttempts of 0 means unbounded.
	MaxAttempts uint
}

func (p RetryPolicy) backoff() retry.Backoff {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultRetryInterval
	}
	b := retry.NewConstant(interval)
	if p.MaxAttempts > 0 {
		b = retry.WithMaxRetries(uint64(p.MaxAttempts-1), b)
	}
	return b
}

func (p RetryPolicy) exhausted(attempts int) bool {
	return p.MaxAttempts > 0 && uint(attempts) >= p.MaxAttempts
}

// Retry calls fn until it succeeds, the policy runs out of attempts or ctx is done.
// Every failure that will be retried is logged at warn level together with the
// delay before the next attempt. It returns the value of the successful call and
// the number of attempts made.
func Retry[T any](ctx context.Context, p RetryPolicy, log *slog.Logger, fn func(context.Context) (T, error)) (T, int, error) {
	if log == nil {
		log = slog.Default()
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultRetryInterval
	}

	var (
		result   T
		attempts int
	)
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempts++
		v, err := fn(ctx)
		if err != nil {
			if p.exhausted(attempts) {
				log.ErrorContext(ctx, "Giving up connecting to MongoDB",
					logger.Error(err),
					logger.RetryCount(attempts),
				)
				return err
			}
			log.WarnContext(ctx, "Cannot connect to MongoDB",
				logger.Error(err),
				logger.RetryCount(attempts),
				logger.RetryIn(interval),
			)
			return retry.RetryableError(err)
		}
		result = v
		return nil
	})
	return result, attempts, err
}
