package usecase

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = time.Second
)

// RetryPolicy bounds the generation loop: at most MaxAttempts calls with a
// fixed Delay between consecutive failures.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func ConstantRetry(maxAttempts int, delay time.Duration) RetryPolicy {
	return RetryPolicy{MaxAttempts: maxAttempts, Delay: delay}.normalized()
}

// normalized clamps p to at least one attempt and a non-negative delay.
// backoff treats zero max tries as unlimited, so the zero policy must not
// reach it unchanged.
func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Delay < 0 {
		p.Delay = 0
	}
	return p
}

func DefaultRetry() RetryPolicy {
	return ConstantRetry(DefaultMaxAttempts, DefaultRetryDelay)
}

// retry runs op until it succeeds or the policy is exhausted. It returns the
// number of attempts made and, on failure, the error of the last attempt.
// Cancelling ctx ends the wait between attempts early.
func retry[T any](
	ctx context.Context,
	p RetryPolicy,
	op func(attempt int) (T, error),
	notify func(attempt int, err error, next time.Duration),
) (T, int, error) {
	p = p.normalized()
	attempts := 0
	var lastErr error

	res, err := backoff.Retry(ctx,
		func() (T, error) {
			attempts++
			v, err := op(attempts)
			if err != nil {
				lastErr = err
			}
			return v, err
		},
		backoff.WithBackOff(backoff.NewConstantBackOff(p.Delay)),
		backoff.WithMaxTries(uint(p.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			if notify != nil {
				notify(attempts, err, next)
			}
		}),
	)
	if err != nil && lastErr != nil && ctx.Err() == nil {
		err = lastErr
	}
	return res, attempts, err
}
