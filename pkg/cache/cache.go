// Package cache is a Redis-backed read cache for list endpoints. When Redis
// is unreachable every operation degrades to a no-op, so the API keeps
// serving straight from the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

var RDB *redis.Client
var Ctx = context.Background()

// Connect initialises the Redis client and verifies the connection with a
// ping. Returns an error so the caller can log a warning and continue.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil // mark as unavailable so Get/Set/Del no-op safely
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.Inc()
		return false
	}

	metrics.CacheHits.Inc()
	return true
}

// Set stores value in Redis under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Forget removes one or more keys. Used by write paths to invalidate the
// lists they touched.
func Forget(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}

// Key builds a versioned cache key. Bumping the namespace version turns
// every key built under the old version cold at once, so write paths never
// need to enumerate which pages or filters were cached.
func Key(namespace, rest string) string {
	return fmt.Sprintf("%s:v%d:%s", namespace, version(namespace), rest)
}

// Bump invalidates a whole namespace by incrementing its version counter.
func Bump(namespaces ...string) {
	if RDB == nil {
		return
	}
	for _, ns := range namespaces {
		RDB.Incr(Ctx, "ver:"+ns)
	}
}

func version(namespace string) int64 {
	if RDB == nil {
		return 0
	}
	v, err := RDB.Get(Ctx, "ver:"+namespace).Int64()
	if err != nil {
		return 0
	}
	return v
}
