package recommend

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// CachedItem is the serializable form of a ranked candidate. Teachings are
// stored by identity and hydrated on a hit so the cache never serves stale
// content fields.
type CachedItem struct {
	TeachingId uuid.UUID `json:"teaching_id"`
	Similarity float64   `json:"similarity"`
	Relevance  float64   `json:"relevance"`
	Rationale  string    `json:"rationale,omitempty"`
}

// CachedResult is one user's ranked list for one normalized topic.
type CachedResult struct {
	Items    []CachedItem `json:"items"`
	Degraded bool         `json:"degraded"`
}

// ResultCache stores ranked results per (user, normalized topic) with a TTL.
// Get returns (nil, nil) on a miss; backends are free to drop entries early.
type ResultCache interface {
	Get(ctx context.Context, key string) (*CachedResult, error)
	Set(ctx context.Context, key string, result *CachedResult) error
	Invalidate(ctx context.Context, key string) error
}

// CacheKey derives the cache key from the user, the normalized topic and the
// requested count, so the same question from the same person lands on the
// same entry regardless of phrasing details the normalizer strips.
func CacheKey(userId string, normalizedTopic string, requestedCount int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s:%d", userId, normalizedTopic, requestedCount)))
	return "advisor:result:" + hex.EncodeToString(sum[:])
}

// ---------------------------------------------------------------------------
// In-memory backend
// ---------------------------------------------------------------------------

type MemoryResultCache struct {
	store *gocache.Cache
}

func NewMemoryResultCache(ttl time.Duration) *MemoryResultCache {
	return &MemoryResultCache{
		store: gocache.New(ttl, 10*time.Minute),
	}
}

func (c *MemoryResultCache) Get(_ context.Context, key string) (*CachedResult, error) {
	v, found := c.store.Get(key)
	if !found {
		return nil, nil
	}
	result, ok := v.(*CachedResult)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value type for key %s", key)
	}
	return result, nil
}

func (c *MemoryResultCache) Set(_ context.Context, key string, result *CachedResult) error {
	c.store.Set(key, result, gocache.DefaultExpiration)
	return nil
}

func (c *MemoryResultCache) Invalidate(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// ---------------------------------------------------------------------------
// Redis backend
// ---------------------------------------------------------------------------

// RedisResultCache shares cached results across instances. Entries are JSON;
// Redis owns the TTL.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{client: client, ttl: ttl}
}

func (c *RedisResultCache) Get(ctx context.Context, key string) (*CachedResult, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var result CachedResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	return &result, nil
}

func (c *RedisResultCache) Set(ctx context.Context, key string, result *CachedResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode cached result: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisResultCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
