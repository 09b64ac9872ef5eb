// AngelaMos | 2026
// cache_test.go

package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

func TestCacheKeys(t *testing.T) {
	today := core.MustParseDate("2024-01-03")

	assert.Equal(t,
		"analytics:insights:user-1:2024-01-03:g0",
		cacheKey(kindInsights, "user-1", today, 0),
	)
	assert.Equal(t, "analytics:index:user-1", indexKey("user-1"))
	assert.Equal(t, "analytics:gen:user-1", generationKey("user-1"))
}

func TestNilCacheComputesEveryTime(t *testing.T) {
	var c *Cache
	calls := 0

	for range 2 {
		got, err := cached(context.Background(), c, kindInsights, "u", core.MustParseDate("2024-01-03"),
			func() (int, error) {
				calls++
				return 42, nil
			},
		)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	}

	assert.Equal(t, 2, calls)
	assert.NotPanics(t, func() { c.InvalidateUser(context.Background(), "u") })
}

func TestCacheFailsOpenWhenRedisUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewCache(client, time.Minute, logger)
	ctx := context.Background()
	today := core.MustParseDate("2024-01-03")

	got, err := cached(ctx, c, kindCategories, "u", today,
		func() (map[string]CategoryStat, error) {
			return map[string]CategoryStat{"exercise": {Count: 1, CompletionRate: 43}}, nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, 43, got["exercise"].CompletionRate)

	assert.NotPanics(t, func() { c.InvalidateUser(ctx, "u") })
}

func TestCachedPropagatesComputeError(t *testing.T) {
	boom := errors.New("boom")

	_, err := cached(context.Background(), NewCache(nil, time.Minute, nil), kindBreakdown, "u",
		core.MustParseDate("2024-01-03"),
		func() ([]Insight, error) { return nil, boom },
	)

	assert.ErrorIs(t, err, boom)
}

func newRedisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCache(client, 5*time.Minute, logger), mr
}

func TestCacheHitSkipsCompute(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	today := core.MustParseDate("2024-01-03")

	calls := 0
	compute := func() ([]Insight, error) {
		calls++
		return []Insight{{
			Title:       "Great Consistency",
			Description: "streak",
			Type:        InsightSuccess,
			Priority:    1,
		}}, nil
	}

	first, err := cached(ctx, c, kindInsights, "u", today, compute)
	require.NoError(t, err)
	second, err := cached(ctx, c, kindInsights, "u", today, compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	key := cacheKey(kindInsights, "u", today, 0)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 5*time.Minute, mr.TTL(key))

	members, err := mr.Members(indexKey("u"))
	require.NoError(t, err)
	assert.Equal(t, []string{key}, members)
}

func TestCacheRoundTripsCategoryStats(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()
	today := core.MustParseDate("2024-01-03")
	want := map[string]CategoryStat{
		"exercise": {Count: 2, CompletionRate: 22},
		"reading":  {Count: 1, CompletionRate: 100},
	}

	_, err := cached(ctx, c, kindCategories, "u", today,
		func() (map[string]CategoryStat, error) { return want, nil },
	)
	require.NoError(t, err)

	got, err := cached(ctx, c, kindCategories, "u", today,
		func() (map[string]CategoryStat, error) {
			return nil, errors.New("should be served from cache")
		},
	)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCacheKeysArePerUserAndDay(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()
	day := core.MustParseDate("2024-01-03")

	value := func(n int) func() (int, error) {
		return func() (int, error) { return n, nil }
	}

	_, err := cached(ctx, c, kindBreakdown, "a", day, value(1))
	require.NoError(t, err)

	got, err := cached(ctx, c, kindBreakdown, "b", day, value(2))
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = cached(ctx, c, kindBreakdown, "a", day.AddDays(1), value(3))
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestInvalidateUserDropsValues(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	today := core.MustParseDate("2024-01-03")

	_, err := cached(ctx, c, kindInsights, "u", today, func() (int, error) { return 1, nil })
	require.NoError(t, err)
	_, err = cached(ctx, c, kindInsights, "other", today, func() (int, error) { return 1, nil })
	require.NoError(t, err)

	c.InvalidateUser(ctx, "u")

	assert.False(t, mr.Exists(cacheKey(kindInsights, "u", today, 0)))
	assert.False(t, mr.Exists(indexKey("u")))
	assert.True(t, mr.Exists(cacheKey(kindInsights, "other", today, 0)))

	gen, err := mr.Get(generationKey("u"))
	require.NoError(t, err)
	assert.Equal(t, "1", gen)
	assert.Equal(t, 10*time.Minute, mr.TTL(generationKey("u")))

	got, err := cached(ctx, c, kindInsights, "u", today, func() (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestInvalidationDuringComputeIsNotServedLater(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()
	today := core.MustParseDate("2024-01-03")

	stale, err := cached(ctx, c, kindInsights, "u", today, func() (int, error) {
		c.InvalidateUser(ctx, "u")
		return 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stale)

	fresh, err := cached(ctx, c, kindInsights, "u", today, func() (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, fresh)
}

func TestCacheGenerationSurvivesStores(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	today := core.MustParseDate("2024-01-03")

	c.InvalidateUser(ctx, "u")
	mr.FastForward(9 * time.Minute)

	_, err := cached(ctx, c, kindInsights, "u", today, func() (int, error) { return 1, nil })
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, mr.TTL(generationKey("u")))
	assert.True(t, mr.Exists(cacheKey(kindInsights, "u", today, 1)))
}
