package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

var Client *redis.Client

// Cache keys for storefront hot paths
const (
	ActiveConfigKey   = "shop:config:active"
	campaignKeyPrefix = "shop:campaign:"
)

// DefaultTTL bounds staleness for cached storefront reads.
const DefaultTTL = 5 * time.Minute

// CampaignKey returns the cache key for a campaign slug
func CampaignKey(slug string) string {
	return campaignKeyPrefix + slug
}

// InitRedis initializes Redis connection
func InitRedis(addr, password string, db int) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	if err := Client.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("✓ Redis connected successfully")
	return nil
}

// Close closes the Redis connection
func Close() error {
	if Client != nil {
		return Client.Close()
	}
	return nil
}

// GetJSON loads a cached value into dest. Returns false on miss or when the
// cache is unavailable; callers fall back to the database.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if Client == nil {
		return false
	}
	raw, err := Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Stale or corrupt entry, drop it
		Client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a value under key with the default TTL. Best effort.
func SetJSON(ctx context.Context, key string, value interface{}) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	Client.Set(ctx, key, raw, DefaultTTL)
}

// Invalidate drops cached entries after a write. Best effort.
func Invalidate(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	Client.Del(ctx, keys...)
}
