package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// ErrStale is returned by Set when the package was invalidated after the
// caller read its generation.  The rows are not stored.
var ErrStale = errors.New("cache: stale generation")

// MatrixCache keeps each package's stored price matrix close to the
// customer-facing endpoints.  Entries are dropped whenever the package is
// recalculated, and every drop bumps the package's generation.  Readers
// take the generation before loading rows from the database and pass it
// to Set, so rows loaded before a recalculation never land after it.
type MatrixCache interface {
	Get(ctx context.Context, packageID uint64) ([]model.PackagePrice, bool)
	Generation(ctx context.Context, packageID uint64) (uint64, error)
	Set(ctx context.Context, packageID, generation uint64, rows []model.PackagePrice) error
	Invalidate(ctx context.Context, packageID uint64) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl, prefix: "prices:pkg:"}
}

func (c *RedisCache) Get(ctx context.Context, packageID uint64) ([]model.PackagePrice, bool) {
	data, err := c.client.Get(ctx, c.key(packageID)).Bytes()
	if err != nil {
		return nil, false
	}

	var rows []model.PackagePrice
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false
	}

	return rows, true
}

func (c *RedisCache) Generation(ctx context.Context, packageID uint64) (uint64, error) {
	gen, err := c.client.Get(ctx, c.genKey(packageID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores rows only while the package is still at generation.
func (c *RedisCache) Set(ctx context.Context, packageID, generation uint64, rows []model.PackagePrice) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	genKey := c.genKey(packageID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != generation {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, c.key(packageID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

func (c *RedisCache) Invalidate(ctx context.Context, packageID uint64) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, c.genKey(packageID))
		p.Del(ctx, c.key(packageID))
		return nil
	})
	return err
}

func (c *RedisCache) key(packageID uint64) string {
	return c.prefix + strconv.FormatUint(packageID, 10)
}

func (c *RedisCache) genKey(packageID uint64) string {
	return c.key(packageID) + ":gen"
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, packageID uint64) ([]model.PackagePrice, bool) {
	return nil, false
}

func (c *NoOpCache) Generation(ctx context.Context, packageID uint64) (uint64, error) {
	return 0, nil
}

func (c *NoOpCache) Set(ctx context.Context, packageID, generation uint64, rows []model.PackagePrice) error {
	return nil
}

func (c *NoOpCache) Invalidate(ctx context.Context, packageID uint64) error {
	return nil
}

// New picks the Redis cache when a client is available.
func New(client *redis.Client, ttl time.Duration) MatrixCache {
	if client == nil {
		return NewNoOpCache()
	}
	return NewRedisCache(client, ttl)
}
