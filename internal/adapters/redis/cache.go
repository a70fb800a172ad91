package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/redis/go-redis/v9"

	"hotel_booking/internal/adapters/observability"
)

// Cache stores JSON values in redis, optionally fronted by an in-process LRU
// holding the encoded bytes. The local copy never outlives the redis TTL.
type Cache struct {
	c     redis.UniversalClient
	local *ccache.Cache[[]byte]
}

func New(addr, pass string, db int) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(c redis.UniversalClient) *Cache { return &Cache{c: c} }

// WithLocal enables the in-process tier with at most size entries. size <= 0 disables it.
func (r *Cache) WithLocal(size int) *Cache {
	if size > 0 {
		r.local = ccache.New(ccache.Configure[[]byte]().MaxSize(int64(size)))
	}
	return r
}

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if r.local != nil {
		if it := r.local.Get(key); it != nil && !it.Expired() {
			observability.ObserveCache("local", "hit")
			return true, json.Unmarshal(it.Value(), dst)
		}
		observability.ObserveCache("local", "miss")
	}
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	if r.local != nil {
		if ttl, err := r.c.TTL(ctx, key).Result(); err == nil && ttl > 0 {
			r.local.Set(key, v, ttl)
		}
	}
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ttl := time.Duration(ttlSec) * time.Second
	observability.ObserveCache("redis", "set")
	if err := r.c.Set(ctx, key, b, ttl).Err(); err != nil {
		return err
	}
	if r.local != nil && ttl > 0 {
		r.local.Set(key, b, ttl)
	}
	return nil
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	if r.local != nil {
		r.local.Delete(key)
	}
	return r.c.Del(ctx, key).Err()
}

func (r *Cache) Close() error {
	if r.local != nil {
		r.local.Stop()
	}
	return r.c.Close()
}
