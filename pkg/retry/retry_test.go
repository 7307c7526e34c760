package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// --- Exponential ---

func TestExponential_SuccessImmediate(t *testing.T) {
	err := Exponential(context.Background(), func() error { return nil }, ExponentialConfig{
		InitialInterval: 5 * time.Millisecond,
		MaxElapsedTime:  100 * time.Millisecond,
	})
	assert.NoError(t, err)
}

func TestExponential_RetryThenSuccess(t *testing.T) {
	var calls int
	var onRetryCount int

	err := Exponential(context.Background(), func() error {
		if calls < 3 {
			calls++
			return errors.New("temporary error")
		}
		return nil
	}, ExponentialConfig{
		InitialInterval: 2 * time.Millisecond,
		MaxElapsedTime:  500 * time.Millisecond,
		OnRetry: func(err error, next time.Duration) {
			onRetryCount++
			assert.Error(t, err)
			assert.Greater(t, next, time.Duration(0))
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, onRetryCount)
}

func TestExponential_MaxRetries(t *testing.T) {
	var calls int
	err := Exponential(context.Background(), func() error {
		calls++
		return errors.New("always fail")
	}, ExponentialConfig{
		InitialInterval: time.Millisecond,
		MaxRetries:      2,
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls, "first attempt plus two retries")
}

func TestExponential_PermanentStops(t *testing.T) {
	sentinel := errors.New("bad request")
	var calls int
	err := Exponential(context.Background(), func() error {
		calls++
		return Permanent(sentinel)
	}, ExponentialConfig{InitialInterval: time.Millisecond, MaxRetries: 5})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestExponential_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Exponential(ctx, func() error { return errors.New("fail") }, ExponentialConfig{
		InitialInterval: 50 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestExponential_InvalidConfig(t *testing.T) {
	err := Exponential(context.Background(), func() error { return nil }, ExponentialConfig{})
	assert.Error(t, err)
}

// --- Constant ---

func TestConstant_SuccessImmediate(t *testing.T) {
	err := Constant(func() error { return nil }, 10*time.Millisecond, 3)
	assert.NoError(t, err)
}

func TestConstant_RetryExactlyNThenFail(t *testing.T) {
	attempts := 3
	var calls int
	err := Constant(func() error {
		calls++
		return errors.New("fail")
	}, 5*time.Millisecond, attempts)

	assert.Error(t, err)
	assert.Equal(t, attempts, calls, "must call exactly 'attempts' times")
}
