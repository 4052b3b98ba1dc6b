package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Feed responses are memoized per ranking epoch: the freshness signal decays
// hourly, so scores within one epoch bucket are stable enough to reuse. The
// TTL keeps entries from outliving their bucket by much.
const (
	FeedCacheTTL    = 2 * time.Minute
	feedEpochBucket = time.Minute
)

// CacheService provides a Redis cache-aside layer for generated feeds.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, feed caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, feed caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, feed caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, feed caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetFeed retrieves a cached feed for the given variant key. Returns nil if
// not cached or caching is disabled.
func (c *CacheService) GetFeed(ctx context.Context, variantKey string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, feedKey(variantKey)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetFeed stores a generated feed under the given variant key.
func (c *CacheService) SetFeed(ctx context.Context, variantKey string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, feedKey(variantKey), b, FeedCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// feedKey buckets keys by epoch so a new ranking pass starts cleanly each
// minute instead of serving stale freshness scores for a full TTL.
func feedKey(variantKey string) string {
	epoch := time.Now().Truncate(feedEpochBucket).Unix()
	return fmt.Sprintf("feed:%s:%d", variantKey, epoch)
}
