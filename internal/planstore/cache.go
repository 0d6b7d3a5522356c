package planstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rs/zerolog"
)

// Cache is a string key/value cache with expiry
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisCache implements Cache with Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at addr
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb}
}

// Ping checks the connection
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// CachedStore reads through a cache in front of another store. Cache
// failures are logged and never fail a request.
type CachedStore struct {
	Store  Store
	Cache  Cache
	TTL    time.Duration
	Logger zerolog.Logger
}

// NewCachedStore wraps store with cache
func NewCachedStore(store Store, cache Cache, ttl time.Duration, logger zerolog.Logger) *CachedStore {
	return &CachedStore{Store: store, Cache: cache, TTL: ttl, Logger: logger}
}

// CacheKey is the cache key for one plan
func CacheKey(userID string, goalType domain.GoalType) string {
	return "goalplan:plan:" + userID + ":" + string(goalType)
}

// Load serves from the cache when possible
func (c *CachedStore) Load(ctx context.Context, userID string, goalType domain.GoalType) (*domain.SavedPlan, error) {
	if err := checkKey(userID, goalType); err != nil {
		return nil, err
	}
	key := CacheKey(userID, goalType)

	if raw, ok, err := c.Cache.Get(ctx, key); err != nil {
		c.Logger.Warn().Err(err).Str("key", key).Msg("plan cache read failed")
	} else if ok {
		var plan domain.SavedPlan
		if err := json.Unmarshal([]byte(raw), &plan); err == nil {
			return &plan, nil
		}
		c.Logger.Warn().Str("key", key).Msg("discarding undecodable cached plan")
	}

	plan, err := c.Store.Load(ctx, userID, goalType)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, plan)
	return plan, nil
}

// Save writes through to the store and refreshes the cache
func (c *CachedStore) Save(ctx context.Context, userID string, goalType domain.GoalType, in domain.GoalPlanInput) (*domain.SavedPlan, error) {
	plan, err := c.Store.Save(ctx, userID, goalType, in)
	if err != nil {
		key := CacheKey(userID, goalType)
		if delErr := c.Cache.Delete(ctx, key); delErr != nil {
			c.Logger.Warn().Err(delErr).Str("key", key).Msg("plan cache invalidation failed")
		}
		return nil, err
	}
	c.put(ctx, CacheKey(userID, goalType), plan)
	return plan, nil
}

func (c *CachedStore) put(ctx context.Context, key string, plan *domain.SavedPlan) {
	raw, err := json.Marshal(plan)
	if err != nil {
		c.Logger.Warn().Err(err).Msg("failed to encode plan for cache")
		return
	}
	if err := c.Cache.Set(ctx, key, string(raw), c.TTL); err != nil {
		c.Logger.Warn().Err(err).Str("key", key).Msg("plan cache write failed")
	}
}
