// Package ratelimit implements token buckets keyed by client.  The Redis
// bucket is shared by every instance and survives restarts; the local
// bucket only exists so the API keeps limiting when Redis is down.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Edonabdullahu1/city-sub003/internal/config"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter consumes one token from the bucket identified by key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// New returns the Redis bucket when a client is available and the local
// one otherwise.
func New(cfg config.RateLimitConfig, rdb *redis.Client) Limiter {
	if rdb != nil {
		return NewRedisLimiter(cfg, rdb)
	}
	return NewLocalLimiter(cfg)
}
