package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerUserRateLimiterBurst(t *testing.T) {
	limiter := NewPerUserRateLimiter(time.Hour, 2)

	assert.True(t, limiter.Allow(1))
	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1))

	// Other users keep their own bucket.
	assert.True(t, limiter.Allow(2))
}

func TestPerUserRateLimiterRefill(t *testing.T) {
	limiter := NewPerUserRateLimiter(10*time.Millisecond, 1)

	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1))

	time.Sleep(25 * time.Millisecond)
	assert.True(t, limiter.Allow(1))
}
