package firstbeat

import (
	"context"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// rateLimiter encapsulates the local token-bucket rate limiting so the
// client stays under the published limit of 100 requests per minute.
type rateLimiter struct {
	limiter        *rate.Limiter
	isAutoLimiting atomic.Bool
}

// newRateLimiter initializes a rate limiter configured for 100 requests per minute.
// The burst is set to 100 to allow initial rapid requests up to the limit.
func newRateLimiter() *rateLimiter {
	// 100 requests per minute = 100 / 60 requests per second
	limit := rate.Limit(100.0 / 60.0)

	rl := &rateLimiter{
		limiter: rate.NewLimiter(limit, 100),
	}
	rl.isAutoLimiting.Store(true) // Default to honoring local rate limits
	return rl
}

// Wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) Wait(ctx context.Context) error {
	if !rl.isAutoLimiting.Load() {
		return nil
	}
	return rl.limiter.Wait(ctx)
}

// SetAutoLimiting enables or disables the rate limiter.
func (rl *rateLimiter) SetAutoLimiting(enabled bool) {
	rl.isAutoLimiting.Store(enabled)
}
