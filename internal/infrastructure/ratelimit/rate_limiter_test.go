package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "token %d should be allowed", i+1)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 10*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)

	allowed, _ = bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(15 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed)
}

func TestRateLimiterPerUserBuckets(t *testing.T) {
	rl := NewRateLimiter()

	// Exhaust u1's send_message budget.
	for i := 0; i < 10; i++ {
		allowed, _ := rl.Allow("u1", "send_message")
		assert.True(t, allowed)
	}
	allowed, _ := rl.Allow("u1", "send_message")
	assert.False(t, allowed)

	// Another user and another action are unaffected.
	allowed, _ = rl.Allow("u2", "send_message")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("u1", "typing")
	assert.True(t, allowed)
}

func TestCleanupRemovesIdleBuckets(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("u1", "send_message")
	rl.buckets["u1:send_message"].lastRefill = time.Now().Add(-2 * time.Hour)

	rl.Cleanup()

	_, exists := rl.buckets["u1:send_message"]
	assert.False(t, exists)
}
