package memcachead

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"

	"hotel_booking/internal/adapters/observability"
)

const (
	maxKeyLen = 250
	// memcached does not report remaining TTL on get, so local copies use a short fixed one.
	localTTL = 5 * time.Second
)

// Cache stores JSON values in memcached, optionally fronted by an in-process LRU.
// gomemcache has no context support; ctx is only checked before each call.
type Cache struct {
	mc    *memcache.Client
	local *ccache.Cache[[]byte]
}

func New(servers ...string) *Cache {
	mc := memcache.New(servers...)
	mc.Timeout = 500 * time.Millisecond
	return &Cache{mc: mc}
}

func (m *Cache) WithLocal(size int) *Cache {
	if size > 0 {
		m.local = ccache.New(ccache.Configure[[]byte]().MaxSize(int64(size)))
	}
	return m
}

func (m *Cache) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.mc.Ping()
}

func (m *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key = Key(key)
	if m.local != nil {
		if it := m.local.Get(key); it != nil && !it.Expired() {
			observability.ObserveCache("local", "hit")
			return true, json.Unmarshal(it.Value(), dst)
		}
		observability.ObserveCache("local", "miss")
	}
	it, err := m.mc.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		observability.ObserveCache("memcached", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("memcached", "hit")
	if m.local != nil {
		m.local.Set(key, it.Value, localTTL)
	}
	return true, json.Unmarshal(it.Value, dst)
}

func (m *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	key = Key(key)
	observability.ObserveCache("memcached", "set")
	if err := m.mc.Set(&memcache.Item{Key: key, Value: b, Expiration: int32(ttlSec)}); err != nil {
		return err
	}
	if m.local != nil && ttlSec > 0 {
		m.local.Set(key, b, min(localTTL, time.Duration(ttlSec)*time.Second))
	}
	return nil
}

// Del is a no-op for absent keys.
func (m *Cache) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key = Key(key)
	observability.ObserveCache("memcached", "del")
	if m.local != nil {
		m.local.Delete(key)
	}
	if err := m.mc.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}

func (m *Cache) Close() error {
	if m.local != nil {
		m.local.Stop()
	}
	return nil
}

// Key maps an arbitrary cache key onto memcached's key rules (no whitespace or
// control bytes, at most 250 bytes). Valid keys pass through unchanged.
func Key(k string) string {
	if len(k) <= maxKeyLen && !strings.ContainsFunc(k, func(r rune) bool { return r <= ' ' || r == 0x7f }) {
		return k
	}
	sum := sha1.Sum([]byte(k))
	return "h:" + hex.EncodeToString(sum[:])
}
