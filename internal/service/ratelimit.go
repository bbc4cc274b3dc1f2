package service

import (
	"sync"
	"time"
)

const (
	bucketIdleAfter = 10 * time.Minute
	sweepEvery      = 256 // Allow calls between stale-bucket sweeps
)

// TokenBucket is an in-memory per-key rate limiter using the token
// bucket algorithm. It is safe for concurrent use. Stale buckets are
// swept opportunistically during Allow, so no background goroutine is
// needed.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens added per second
	capacity float64 // maximum tokens
	calls    int
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket creates a rate limiter that allows up to capacity
// requests per key, refilling at the given rate in tokens per second.
func NewTokenBucket(rate, capacity float64) *TokenBucket {
	return &TokenBucket{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
	}
}

// Allow reports whether the given key may proceed under the rate
// limit. Each permitted call consumes one token.
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.calls++
	if tb.calls%sweepEvery == 0 {
		tb.sweep(now)
	}

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, last: now}
		tb.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*tb.rate, tb.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// sweep removes buckets idle long enough to have refilled completely.
// Callers must hold mu.
func (tb *TokenBucket) sweep(now time.Time) {
	cutoff := now.Add(-bucketIdleAfter)
	for key, b := range tb.buckets {
		if b.last.Before(cutoff) {
			delete(tb.buckets, key)
		}
	}
}
