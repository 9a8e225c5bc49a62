package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"eodseries/internal/provider"
)

// TokenBucket refills at rate tokens per second up to capacity (the burst).
// A call takes one token; a caller that finds the bucket empty books the
// next token in advance, so waiters are served one refill period apart.
type TokenBucket struct {
	rate     float64
	capacity float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
	// paused holds all callers until this time after a rate limit response.
	paused time.Time
}

func NewTokenBucket(tokensPerSecond float64, burst int) *TokenBucket {
	if tokensPerSecond <= 0 {
		tokensPerSecond = 0.0000001
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		rate:     tokensPerSecond,
		capacity: float64(burst),
		tokens:   float64(burst),
		last:     time.Now(),
	}
}

// reserve takes a token, possibly driving the balance negative, and returns
// when the caller may proceed.
func (tb *TokenBucket) reserve() time.Time {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	if now.After(tb.last) {
		tb.tokens = min(tb.capacity, tb.tokens+now.Sub(tb.last).Seconds()*tb.rate)
		tb.last = now
	}
	tb.tokens--

	at := now
	if tb.paused.After(at) {
		at = tb.paused
	}
	if tb.tokens < 0 {
		at = at.Add(time.Duration(-tb.tokens / tb.rate * float64(time.Second)))
	}
	return at
}

// Wait blocks until a token is available or ctx is canceled. A canceled
// wait does not return its token.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	return sleepUntil(ctx, tb.reserve())
}

// Pause empties the bucket and holds every caller for at least d.
func (tb *TokenBucket) Pause(d time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	until := time.Now().Add(d)
	if until.After(tb.paused) {
		tb.paused = until
	}
	tb.tokens = min(tb.tokens, 0)
	tb.last = tb.paused
}

// TokenBucketProvider wraps a Provider and gates calls using a token bucket.
type TokenBucketProvider struct {
	P        provider.Provider
	TB       *TokenBucket
	Cooldown time.Duration
}

func (t *TokenBucketProvider) Name() string { return t.P.Name() }

func (t *TokenBucketProvider) Fetch(ctx context.Context, req provider.Request) (provider.Dataset, error) {
	if t.TB == nil {
		return t.P.Fetch(ctx, req)
	}
	if err := t.TB.Wait(ctx); err != nil {
		return provider.Dataset{}, err
	}
	ds, err := t.P.Fetch(ctx, req)
	if errors.Is(err, provider.ErrRateLimited) {
		t.TB.Pause(cooldown(t.Cooldown))
	}
	return ds, err
}
