// Package resultcache stores finished analysis results in Redis, keyed
// by video content hash, so re-uploads of the same video skip the whole
// pipeline.
package resultcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 7 * 24 * time.Hour

type ResultCache struct {
	log    logs.Log
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache connects to Redis at url (eg "redis://localhost:6379/0").
// ttl 0 means DefaultTTL.
func NewResultCache(log logs.Log, url string, ttl time.Duration) (*ResultCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewResultCacheClient(log, redis.NewClient(opt), ttl), nil
}

// NewResultCacheClient wraps an existing Redis client. Used by tests
// with miniredis.
func NewResultCacheClient(log logs.Log, client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		log:    log,
		client: client,
		ttl:    ttl,
	}
}

func (c *ResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ResultCache) Close() error {
	return c.client.Close()
}

func resultKey(videoHash string) string {
	return "result:" + videoHash
}

// Get unmarshals the cached result for videoHash into out. Returns
// (false, nil) on a cache miss.
func (c *ResultCache) Get(ctx context.Context, videoHash string, out any) (bool, error) {
	data, err := c.client.Get(ctx, resultKey(videoHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Corrupt entries count as a miss
		c.log.Warnf("Discarding corrupt cache entry for %v: %v", videoHash, err)
		return false, nil
	}
	return true, nil
}

// Set caches the result for videoHash with the cache's TTL.
func (c *ResultCache) Set(ctx context.Context, videoHash string, result any) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resultKey(videoHash), data, c.ttl).Err()
}

// Delete evicts the cached result for videoHash.
func (c *ResultCache) Delete(ctx context.Context, videoHash string) error {
	return c.client.Del(ctx, resultKey(videoHash)).Err()
}
