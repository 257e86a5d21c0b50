package limiter

import (
	"context"
	"sync"
	"time"
)

// RateLimiter caps the number of outbound requests per second.
type RateLimiter struct {
	requestTimes []time.Time
	maxRequests  int
	throttle     time.Duration
	mu           sync.Mutex
}

// NewRateLimiter allows maxRequests per second. throttle is how long Wait
// sleeps between retries; maxRequests <= 0 disables the limiter.
func NewRateLimiter(maxRequests int, throttle time.Duration) *RateLimiter {
	if throttle <= 0 {
		throttle = 10 * time.Millisecond
	}
	return &RateLimiter{
		requestTimes: make([]time.Time, 0, max(maxRequests, 0)),
		maxRequests:  maxRequests,
		throttle:     throttle,
	}
}

// Allow reports whether a new request may go out now and records it if so.
func (r *RateLimiter) Allow() bool {
	if r.maxRequests <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	oneSecondAgo := now.Add(-1 * time.Second)

	// Drop requests older than one second
	validTimes := make([]time.Time, 0, len(r.requestTimes))
	for _, t := range r.requestTimes {
		if t.After(oneSecondAgo) {
			validTimes = append(validTimes, t)
		}
	}
	r.requestTimes = validTimes

	if len(r.requestTimes) < r.maxRequests {
		r.requestTimes = append(r.requestTimes, now)
		return true
	}

	return false
}

// Wait blocks until a request slot opens or the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for !r.Allow() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.throttle):
		}
	}
	return nil
}
