// AngelaMos | 2026
// cache.go

package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

const (
	kindInsights   = "insights"
	kindCategories = "categories"
	kindBreakdown  = "breakdown"

	keyPrefix = "analytics"
)

// Cache stores derived analytics per user and day in Redis. A nil *Cache,
// or one without a client, computes every value directly. Redis failures
// are logged and fall through to computing.
//
// Keys carry a per-user generation. InvalidateUser bumps it, so a value
// computed from data read before a mutation lands under a generation no
// later read will ask for.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

func cacheKey(kind, userID string, today core.Date, gen int64) string {
	return fmt.Sprintf("%s:%s:%s:%s:g%d", keyPrefix, kind, userID, today, gen)
}

func generationKey(userID string) string {
	return fmt.Sprintf("%s:gen:%s", keyPrefix, userID)
}

// generationTTL outlives every value stored under the current generation so
// the counter never resets while an older entry is still readable.
func (c *Cache) generationTTL() time.Duration {
	return 2 * c.ttl
}

func (c *Cache) generation(ctx context.Context, userID string) (int64, bool) {
	gen, err := c.client.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		c.logger.WarnContext(ctx, "analytics cache generation read failed",
			"user_id", userID,
			"error", err,
		)
		return 0, false
	}
	return gen, true
}

// indexKey lists every cache key written for a user so they can be dropped
// together.
func indexKey(userID string) string {
	return fmt.Sprintf("%s:index:%s", keyPrefix, userID)
}

func (c *Cache) load(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "analytics cache read failed",
			"key", key,
			"error", err,
		)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.WarnContext(ctx, "analytics cache entry corrupt",
			"key", key,
			"error", err,
		)
		return false
	}
	return true
}

func (c *Cache) store(ctx context.Context, userID, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "analytics cache encode failed",
			"key", key,
			"error", err,
		)
		return
	}

	index := indexKey(userID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, raw, c.ttl)
		pipe.SAdd(ctx, index, key)
		pipe.Expire(ctx, index, c.ttl)
		pipe.Expire(ctx, generationKey(userID), c.generationTTL())
		return nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "analytics cache write failed",
			"key", key,
			"error", err,
		)
	}
}

// InvalidateUser moves the user to a new generation and deletes the values
// stored so far.
func (c *Cache) InvalidateUser(ctx context.Context, userID string) {
	if !c.enabled() {
		return
	}

	gen := generationKey(userID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, gen)
		pipe.Expire(ctx, gen, c.generationTTL())
		return nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "analytics cache invalidation failed",
			"user_id", userID,
			"error", err,
		)
		return
	}

	index := indexKey(userID)
	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		c.logger.WarnContext(ctx, "analytics cache index read failed",
			"user_id", userID,
			"error", err,
		)
		return
	}

	if err := c.client.Del(ctx, append(keys, index)...).Err(); err != nil {
		c.logger.WarnContext(ctx, "analytics cache cleanup failed",
			"user_id", userID,
			"error", err,
		)
	}
}

// cached returns the stored value for (kind, user, day) or computes and
// stores it.
func cached[T any](
	ctx context.Context,
	c *Cache,
	kind, userID string,
	today core.Date,
	compute func() (T, error),
) (T, error) {
	if !c.enabled() {
		return compute()
	}

	gen, ok := c.generation(ctx, userID)
	if !ok {
		return compute()
	}
	key := cacheKey(kind, userID, today, gen)

	var hit T
	if c.load(ctx, key, &hit) {
		return hit, nil
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	c.store(ctx, userID, key, value)
	return value, nil
}

var _ core.Invalidator = (*Cache)(nil)
