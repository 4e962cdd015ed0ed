package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// PerUserRateLimiter throttles chat turns per authenticated user. Each model
// call is paid upstream, so turns are limited independently of the global
// concurrency cap.
type PerUserRateLimiter struct {
	mu       sync.Mutex
	limiters map[int32]*rate.Limiter

	limit rate.Limit
	burst int
}

// NewPerUserRateLimiter allows one turn per interval with the given burst.
func NewPerUserRateLimiter(interval time.Duration, burst int) *PerUserRateLimiter {
	return &PerUserRateLimiter{
		limiters: make(map[int32]*rate.Limiter),
		limit:    rate.Every(interval),
		burst:    burst,
	}
}

// Allow reports whether the user may send a turn now.
func (l *PerUserRateLimiter) Allow(userID int32) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
