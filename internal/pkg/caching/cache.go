package caching

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

type ReadOnlyCache interface {
	Get(ctx context.Context, key string, target any) error
}

type Cache interface {
	ReadOnlyCache
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// UseCache returns the cached value for key, or calls callback and stores its
// result. Errors from the cache itself never fail the call.
func UseCache[T any](ctx context.Context, cash Cache, key string, ttl time.Duration, callback func() (T, error)) (T, error) {
	var v T
	err := cash.Get(ctx, key, &v)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("[cache] get %s: %v\n", key, err)
	}

	v, err = callback()
	if err != nil {
		return v, err
	}

	// fire and forget
	if err := cash.Set(ctx, key, v, ttl); err != nil {
		log.Printf("[cache] set %s: %v\n", key, err)
	}
	return v, nil
}

type CacheRedis struct {
	instance *cache.Cache
}

func (c *CacheRedis) Get(ctx context.Context, key string, target any) error {
	return c.instance.Get(ctx, key, target)
}

func (c *CacheRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.instance.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		TTL:   ttl,
	})
}

func (c *CacheRedis) Delete(ctx context.Context, key string) error {
	return c.instance.Delete(ctx, key)
}

// NewCacheRedis builds a cache backed by client. client may be nil, in which
// case only the in-process cache is used and withLocalCache is forced on.
func NewCacheRedis(client redis.UniversalClient, withLocalCache bool) (*CacheRedis, error) {
	opts := &cache.Options{
		Marshal:   msgpack.Marshal,
		Unmarshal: msgpack.Unmarshal,
	}
	if client != nil {
		opts.Redis = client
	}
	if withLocalCache || client == nil {
		opts.LocalCache = cache.NewTinyLFU(10000, time.Minute)
	}
	return &CacheRedis{cache.New(opts)}, nil
}
