package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts = 3
	DefaultInterval    = 500 * time.Millisecond
)

type Operation func() error

type ExponentialConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime defaults to 15m; negative retries until ctx is done.
	MaxElapsedTime time.Duration
	// MaxRetries caps the retries after the first attempt; 0 means no cap.
	MaxRetries uint64
	OnRetry    func(error, time.Duration)
}

// Permanent marks err so Exponential stops retrying and returns it unwrapped.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Exponential retries fn with exponential backoff until it succeeds, returns a
// Permanent error, runs out of retries or ctx is done.
func Exponential(ctx context.Context, fn Operation, cfg ExponentialConfig) error {
	if cfg.InitialInterval <= 0 {
		return errors.New("initial interval must be > 0")
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = cfg.InitialInterval
	if cfg.MaxInterval > 0 {
		exp.MaxInterval = cfg.MaxInterval
	}
	switch {
	case cfg.MaxElapsedTime > 0:
		exp.MaxElapsedTime = cfg.MaxElapsedTime
	case cfg.MaxElapsedTime < 0:
		exp.MaxElapsedTime = 0
	}

	var bo backoff.BackOff = exp
	if cfg.MaxRetries > 0 {
		bo = backoff.WithMaxRetries(bo, cfg.MaxRetries)
	}
	if ctx != nil {
		bo = backoff.WithContext(bo, ctx)
	}

	return backoff.RetryNotify(backoff.Operation(fn), bo, func(err error, next time.Duration) {
		if cfg.OnRetry != nil {
			cfg.OnRetry(err, next)
		}
	})
}

// Constant calls fn up to attempts times, sleeping interval between calls.
func Constant(fn Operation, interval time.Duration, attempts int) error {
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts {
			time.Sleep(interval)
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
