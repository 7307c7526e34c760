package ratelimiter

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter throttles calls against one API host.
type RateLimiter struct {
	limiter *rate.Limiter
	burst   int
	rps     int
}

// New creates a limiter allowing rps requests per second with the given burst.
func New(rps int, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = rps
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		burst:   burst,
		rps:     rps,
	}
}

// Wait blocks until a token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// TryAcquire takes a token without blocking.
func (rl *RateLimiter) TryAcquire() bool {
	return rl.limiter.Allow()
}

// Stats returns the approximate available tokens, the burst and the configured rps.
func (rl *RateLimiter) Stats() (available, capacity, rps int) {
	available = int(rl.limiter.Tokens())
	if available < 0 {
		available = 0
	}
	return available, rl.burst, rl.rps
}

var (
	sharedMu sync.Mutex
	shared   = map[string]*RateLimiter{}
)

// Shared returns one limiter per host and settings, so the REST client, the CLI and
// the worker stay under the same public API quota.
func Shared(host string, rps int, burst int) *RateLimiter {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	key := fmt.Sprintf("%s_%d_%d", host, rps, burst)
	if rl, ok := shared[key]; ok {
		return rl
	}
	rl := New(rps, burst)
	shared[key] = rl
	return rl
}
