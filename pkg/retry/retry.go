// Package retry repeats an operation with exponential backoff. The gradebook
// uses it to wait for PostgreSQL or Redis while they are still starting.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// permanentError stops the retry loop immediately.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Do returns the unwrapped err.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Backoff describes the delay schedule. Delay n is
// Initial * Multiplier^(n-1), capped at Max, then spread by +/- Jitter.
type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64 // 0..1
}

// Delay returns the pause after the given failed attempt (1-based).
func (b Backoff) Delay(attempt int) time.Duration {
	d := float64(b.Initial)
	for i := 1; i < attempt && d < float64(b.Max); i++ {
		d *= b.Multiplier
	}
	if b.Max > 0 && d > float64(b.Max) {
		d = float64(b.Max)
	}
	if b.Jitter > 0 {
		d += d * b.Jitter * (rand.Float64()*2 - 1)
	}
	return time.Duration(max(d, 0))
}

// Retrier runs an operation up to Attempts times.
type Retrier struct {
	Attempts int
	Backoff  Backoff

	// ShouldRetry decides whether a failure is retried. Nil retries everything
	// that is not Permanent.
	ShouldRetry func(err error) bool

	// OnRetry is called before each pause. May be nil.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Do calls op until it succeeds, fails permanently, runs out of attempts or
// ctx is done. The last operation error is returned in preference to
// ctx.Err().
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := max(r.Attempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.Join(lastErr, err)
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		var p *permanentError
		if errors.As(err, &p) {
			return p.err
		}
		if r.ShouldRetry != nil && !r.ShouldRetry(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		delay := r.Backoff.Delay(attempt)
		if r.OnRetry != nil {
			r.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}

// StoreConnectRetrier returns a Retrier for opening a store connection.
// Context cancellation and deadline errors are not retried; onRetry may be nil.
func StoreConnectRetrier(attempts int, initialDelay time.Duration, onRetry func(attempt int, err error, delay time.Duration)) *Retrier {
	return &Retrier{
		Attempts: attempts,
		Backoff: Backoff{
			Initial:    initialDelay,
			Max:        5 * time.Second,
			Multiplier: 2,
			Jitter:     0.1,
		},
		ShouldRetry: func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
		OnRetry: onRetry,
	}
}
