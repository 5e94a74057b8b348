// Package listcache keeps the storefront product list warm in Redis, or in
// the in-process cache when Redis is not configured.
package listcache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"larana.GO/core/cache"
	"larana.GO/model/entity/catalog"
)

// Keys shared with the storefront.
const (
	KeyProducts  = "larana-products"
	KeyTimestamp = "larana-products-timestamp"
)

// Snapshot is a cached product list and the time it was stored.
type Snapshot struct {
	Products []catalog.Product `json:"products"`
	StoredAt time.Time         `json:"storedAt"`
}

// Loader returns the current product list on a cache miss, with the catalog
// version it was read at.
type Loader func() ([]catalog.Product, uint64)

type ListCache struct {
	rdb   *redis.Client
	local *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time

	// mu orders writes against invalidations; floor is the oldest catalog
	// version a write may still store.
	mu    sync.Mutex
	floor uint64
}

// New returns a cache backed by rdb, or by local when rdb is nil.
func New(rdb *redis.Client, local *cache.Cache, ttl time.Duration, log *zap.Logger) *ListCache {
	if local == nil {
		local = cache.GetInstance()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ListCache{rdb: rdb, local: local, ttl: ttl, log: log, now: time.Now}
}

// Get returns the cached list, filling it from load on a miss.
func (c *ListCache) Get(ctx context.Context, load Loader) Snapshot {
	if snap, ok := c.read(ctx); ok {
		return snap
	}
	products, version := load()
	snap, _ := c.Put(ctx, products, version)
	return snap
}

// Put stores products read at catalog version and returns the snapshot. A list
// older than the last invalidation is returned but not stored.
func (c *ListCache) Put(ctx context.Context, products []catalog.Product, version uint64) (Snapshot, bool) {
	snap := Snapshot{Products: products, StoredAt: c.now().UTC()}
	c.mu.Lock()
	defer c.mu.Unlock()
	if version < c.floor {
		c.log.Debug("listcache: stale list not stored", zap.Uint64("version", version), zap.Uint64("floor", c.floor))
		return snap, false
	}
	if c.rdb == nil {
		c.local.Set(KeyProducts, snap, int64(c.ttl/time.Second), []string{KeyProducts})
		return snap, true
	}
	data, err := json.Marshal(products)
	if err != nil {
		c.log.Warn("listcache: encode products", zap.Error(err))
		return snap, false
	}
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, KeyProducts, data, c.ttl)
	pipe.Set(ctx, KeyTimestamp, snap.StoredAt.Format(time.RFC3339Nano), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("listcache: redis write failed", zap.Error(err))
		return snap, false
	}
	return snap, true
}

// Invalidate drops the cached list and refuses later writes of lists read
// before catalog version.
func (c *ListCache) Invalidate(ctx context.Context, version uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version > c.floor {
		c.floor = version
	}
	if c.rdb == nil {
		c.local.DeleteByTag(KeyProducts)
		return
	}
	if err := c.rdb.Del(ctx, KeyProducts, KeyTimestamp).Err(); err != nil {
		c.log.Warn("listcache: redis delete failed", zap.Error(err))
	}
}

func (c *ListCache) read(ctx context.Context) (Snapshot, bool) {
	if c.rdb == nil {
		v, ok := c.local.Get(KeyProducts)
		if !ok {
			return Snapshot{}, false
		}
		snap, ok := v.(Snapshot)
		return snap, ok
	}
	vals, err := c.rdb.MGet(ctx, KeyProducts, KeyTimestamp).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("listcache: redis read failed", zap.Error(err))
		}
		return Snapshot{}, false
	}
	raw, ok := vals[0].(string)
	if !ok {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap.Products); err != nil {
		c.log.Warn("listcache: decode products", zap.Error(err))
		return Snapshot{}, false
	}
	if ts, ok := vals[1].(string); ok {
		snap.StoredAt, _ = time.Parse(time.RFC3339Nano, ts)
	}
	return snap, true
}
