package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"eodseries/internal/provider"
)

// DefaultCooldown is how long calls are held back after the provider
// reports a rate limit, when Limits.Cooldown is unset.
const DefaultCooldown = time.Minute

// Limits configures Wrap.
type Limits struct {
	// PerMinute enables a token bucket when positive.
	PerMinute int
	Burst     int
	// MinInterval spaces calls when PerMinute is unset.
	MinInterval time.Duration
	// Cooldown holds back the next call after provider.ErrRateLimited.
	Cooldown time.Duration
}

// MinInterval wraps a provider and starts calls at least Interval apart.
// Each caller books its start time under the lock, so concurrent callers
// queue one Interval behind another.
type MinInterval struct {
	P        provider.Provider
	Interval time.Duration
	Cooldown time.Duration

	mu   sync.Mutex
	next time.Time
}

func (m *MinInterval) Name() string { return m.P.Name() }

// reserve books the next free start time and returns it.
func (m *MinInterval) reserve() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	at := time.Now()
	if m.next.After(at) {
		at = m.next
	}
	m.next = at.Add(m.Interval)
	return at
}

// holdOff pushes the next start time at least d into the future.
func (m *MinInterval) holdOff(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if until := time.Now().Add(d); until.After(m.next) {
		m.next = until
	}
}

func (m *MinInterval) Fetch(ctx context.Context, req provider.Request) (provider.Dataset, error) {
	if err := sleepUntil(ctx, m.reserve()); err != nil {
		return provider.Dataset{}, err
	}
	ds, err := m.P.Fetch(ctx, req)
	if errors.Is(err, provider.ErrRateLimited) {
		m.holdOff(cooldown(m.Cooldown))
	}
	return ds, err
}

// Wrap applies l to p: a token bucket when PerMinute is set, otherwise a
// minimum interval, otherwise p unchanged.
func Wrap(p provider.Provider, l Limits) provider.Provider {
	switch {
	case l.PerMinute > 0:
		return &TokenBucketProvider{
			P:        p,
			TB:       NewTokenBucket(float64(l.PerMinute)/60.0, l.Burst),
			Cooldown: l.Cooldown,
		}
	case l.MinInterval > 0:
		return &MinInterval{P: p, Interval: l.MinInterval, Cooldown: l.Cooldown}
	}
	return p
}

func cooldown(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultCooldown
	}
	return d
}

// sleepUntil blocks until t or until ctx is done.
func sleepUntil(ctx context.Context, t time.Time) error {
	wait := time.Until(t)
	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
