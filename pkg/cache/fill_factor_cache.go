package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// AverageCacheTTL bounds how long a stale average can survive a missed
	// invalidation.
	AverageCacheTTL = 10 * time.Minute

	// generationTTL outlives any cached hash, so a generation never resets
	// while a value computed under it can still be written.
	generationTTL = 24 * time.Hour

	averageCacheKeyPrefix = "fridge:avg"
)

// CachedAverage is the read model of one type's average fill factor.
type CachedAverage struct {
	TypeID     int64
	Average    float64
	ItemCount  int
	ComputedAt time.Time
}

// AverageCache stores per-type average fill factors as Redis hashes.
// Key format: "fridge:avg:{typeID}", with the type's generation counter at
// "fridge:avg:{typeID}:gen". Braces keep both keys in one cluster slot.
//
// Delete bumps the generation. Set only writes when the generation still
// matches the one Get returned, so an average read before a committed change
// is never cached after that change's invalidation.
type AverageCache struct {
	client *RedisClient
}

// NewAverageCache creates an AverageCache backed by the given RedisClient.
func NewAverageCache(r *RedisClient) *AverageCache {
	return &AverageCache{client: r}
}

// setIfGenerationScript writes the hash only when KEYS[2] still holds ARGV[1].
// A missing generation key reads as 0.
var setIfGenerationScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2])
if not gen then
	gen = '0'
end
if gen ~= ARGV[1] then
	return 0
end

redis.call('HSET', KEYS[1], 'average', ARGV[2], 'item_count', ARGV[3], 'computed_at', ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// Get returns the cached average for typeID and the type's current
// generation. On a miss the error is redis.Nil and the generation is the one
// to hand to Set.
func (c *AverageCache) Get(ctx context.Context, typeID int64) (*CachedAverage, int64, error) {
	var (
		fields *redis.MapStringStringCmd
		gen    *redis.StringCmd
	)
	_, err := c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		fields = pipe.HGetAll(ctx, c.key(typeID))
		gen = pipe.Get(ctx, c.genKey(typeID))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("cache get: %w", err)
	}

	generation, err := gen.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("cache parse generation: %w", err)
	}
	vals := fields.Val()
	if len(vals) == 0 {
		return nil, generation, redis.Nil
	}

	avg, err := strconv.ParseFloat(vals["average"], 64)
	if err != nil {
		return nil, 0, fmt.Errorf("cache parse average: %w", err)
	}
	count, err := strconv.Atoi(vals["item_count"])
	if err != nil {
		return nil, 0, fmt.Errorf("cache parse item_count: %w", err)
	}
	computedAt, err := time.Parse(time.RFC3339Nano, vals["computed_at"])
	if err != nil {
		return nil, 0, fmt.Errorf("cache parse computed_at: %w", err)
	}

	return &CachedAverage{
		TypeID:     typeID,
		Average:    avg,
		ItemCount:  count,
		ComputedAt: computedAt,
	}, generation, nil
}

// Set writes the hash and its TTL if the type's generation is still gen.
// It reports whether the value was stored.
func (c *AverageCache) Set(ctx context.Context, avg *CachedAverage, gen int64) (bool, error) {
	stored, err := setIfGenerationScript.Run(ctx, c.client.Client(),
		[]string{c.key(avg.TypeID), c.genKey(avg.TypeID)},
		strconv.FormatInt(gen, 10),
		strconv.FormatFloat(avg.Average, 'g', -1, 64),
		strconv.Itoa(avg.ItemCount),
		avg.ComputedAt.UTC().Format(time.RFC3339Nano),
		AverageCacheTTL.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	return stored == 1, nil
}

// Delete drops the cached average of typeID and bumps its generation.
// Deleting a missing key is not an error.
func (c *AverageCache) Delete(ctx context.Context, typeID int64) error {
	_, err := c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.key(typeID))
		pipe.Incr(ctx, c.genKey(typeID))
		pipe.Expire(ctx, c.genKey(typeID), generationTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *AverageCache) key(typeID int64) string {
	return fmt.Sprintf("%s:{%d}", averageCacheKeyPrefix, typeID)
}

func (c *AverageCache) genKey(typeID int64) string {
	return c.key(typeID) + ":gen"
}
