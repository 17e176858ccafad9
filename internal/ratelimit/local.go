package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Edonabdullahu1/city-sub003/internal/config"
)

type localBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter keeps one rate.Limiter per key in memory.  Buckets idle for
// longer than the configured TTL are dropped.
type LocalLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastPrune time.Time
	now       func() time.Time
}

func NewLocalLimiter(cfg config.RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		buckets: make(map[string]*localBucket),
		limit:   rate.Limit(cfg.RatePerSecond()),
		burst:   cfg.Capacity,
		ttl:     cfg.TTL,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(now)
	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	d := Decision{Limit: l.burst}
	r := b.lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); !r.OK() || delay > 0 {
		r.CancelAt(now)
		d.RetryAfter = delay
		return d, nil
	}
	d.Allowed = true
	d.Remaining = int64(b.lim.TokensAt(now))
	return d, nil
}

func (l *LocalLimiter) prune(now time.Time) {
	if l.ttl <= 0 || now.Sub(l.lastPrune) < l.ttl {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.ttl {
			delete(l.buckets, k)
		}
	}
	l.lastPrune = now
}
