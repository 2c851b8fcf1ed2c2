// Package service contains the business logic for the packaging service.
package service

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/guttosm/smartpack-service/internal/metrics"
	"github.com/guttosm/smartpack-service/internal/service/cache"
)

const (
	defaultCacheShards   = 16
	defaultSweepInterval = time.Minute
)

// CacheOption tunes a ShardedCache.
type CacheOption func(*cacheSettings)

type cacheSettings struct {
	clock         func() time.Time
	sweepInterval time.Duration
}

// WithCacheClock replaces time.Now for expiry decisions.
func WithCacheClock(clock func() time.Time) CacheOption {
	return func(s *cacheSettings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithSweepInterval sets how often expired entries are purged. Zero or
// negative disables the background sweep; expired entries are then only
// dropped when read or pushed out by capacity.
func WithSweepInterval(d time.Duration) CacheOption {
	return func(s *cacheSettings) {
		s.sweepInterval = d
	}
}

// ShardedCache is a string-keyed LRU with a fixed TTL. Keys are spread over
// a power-of-two number of shards by xxhash so concurrent quotes rarely
// contend on the same lock.
type ShardedCache[V any] struct {
	name   string
	ttl    time.Duration
	clock  func() time.Time
	shards []*cacheShard[V]
	mask   uint64

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	done     chan struct{}
	stopOnce sync.Once
}

// cacheShard holds one slice of the key space. order keeps the most
// recently used element at the front.
type cacheShard[V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

type cacheItem[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// NewShardedCache builds a cache holding about capacity entries in total.
// numShards is rounded up to a power of two, defaulting to 16. The name
// labels the cache in metrics.
func NewShardedCache[V any](name string, capacity int, ttl time.Duration, numShards int, opts ...CacheOption) *ShardedCache[V] {
	settings := cacheSettings{clock: time.Now, sweepInterval: defaultSweepInterval}
	for _, opt := range opts {
		opt(&settings)
	}

	count := shardCount(numShards)
	perShard := capacity / count
	if perShard < 1 {
		perShard = 1
	}

	c := &ShardedCache[V]{
		name:   name,
		ttl:    ttl,
		clock:  settings.clock,
		shards: make([]*cacheShard[V], count),
		mask:   uint64(count - 1),
		done:   make(chan struct{}),
	}
	for i := range c.shards {
		c.shards[i] = &cacheShard[V]{
			capacity: perShard,
			entries:  make(map[string]*list.Element, perShard),
			order:    list.New(),
		}
	}

	if settings.sweepInterval > 0 {
		go c.sweepLoop(settings.sweepInterval)
	}
	return c
}

func shardCount(requested int) int {
	if requested <= 0 {
		return defaultCacheShards
	}
	n := 1
	for n < requested {
		n <<= 1
	}
	return n
}

func (c *ShardedCache[V]) shardFor(key string) *cacheShard[V] {
	return c.shards[xxhash.Sum64String(key)&c.mask]
}

// Get returns the live value for key and marks it recently used.
func (c *ShardedCache[V]) Get(key string) (V, bool) {
	var zero V
	s := c.shardFor(key)

	s.mu.Lock()
	el, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}

	item := el.Value.(*cacheItem[V])
	if !c.clock().Before(item.expiresAt) {
		s.drop(el)
		s.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation(c.name, "get", "expired")
		return zero, false
	}

	s.order.MoveToFront(el)
	value := item.value
	s.mu.Unlock()

	c.hits.Add(1)
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return value, true
}

// Set stores value under key with a fresh TTL. When the shard is full the
// least recently used entry is evicted.
func (c *ShardedCache[V]) Set(key string, value V) {
	s := c.shardFor(key)
	expiresAt := c.clock().Add(c.ttl)

	s.mu.Lock()
	if el, ok := s.entries[key]; ok {
		item := el.Value.(*cacheItem[V])
		item.value = value
		item.expiresAt = expiresAt
		s.order.MoveToFront(el)
		s.mu.Unlock()
		metrics.RecordCacheOperation(c.name, "set", "success")
		return
	}

	s.entries[key] = s.order.PushFront(&cacheItem[V]{key: key, value: value, expiresAt: expiresAt})
	evicted := false
	if s.order.Len() > s.capacity {
		s.drop(s.order.Back())
		evicted = true
	}
	s.mu.Unlock()

	if evicted {
		c.evictions.Add(1)
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
	}
	metrics.RecordCacheOperation(c.name, "set", "success")
}

// Invalidate forgets key if present.
func (c *ShardedCache[V]) Invalidate(key string) {
	s := c.shardFor(key)

	s.mu.Lock()
	el, ok := s.entries[key]
	if ok {
		s.drop(el)
	}
	s.mu.Unlock()

	if ok {
		metrics.RecordCacheOperation(c.name, "invalidate", "success")
	}
}

// Clear empties every shard and resets the hit, miss and eviction counters.
func (c *ShardedCache[V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[string]*list.Element, s.capacity)
		s.order.Init()
		s.mu.Unlock()
	}
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	metrics.RecordCacheOperation(c.name, "clear", "success")
}

// Stop ends the background sweep. It may be called more than once.
func (c *ShardedCache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// Metrics snapshots the counters and publishes the size and capacity gauges.
func (c *ShardedCache[V]) Metrics() cache.Metrics {
	m := cache.Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	for _, s := range c.shards {
		s.mu.Lock()
		m.Size += s.order.Len()
		m.Capacity += s.capacity
		s.mu.Unlock()
	}
	metrics.UpdateCacheMetrics(c.name, m.Size, m.Capacity)
	return m
}

func (c *ShardedCache[V]) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

// sweep drops every expired entry and reports how many were removed.
func (c *ShardedCache[V]) sweep() int {
	now := c.clock()
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for el := s.order.Back(); el != nil; {
			prev := el.Prev()
			if !now.Before(el.Value.(*cacheItem[V]).expiresAt) {
				s.drop(el)
				removed++
			}
			el = prev
		}
		s.mu.Unlock()
	}
	if removed > 0 {
		metrics.RecordCacheOperation(c.name, "sweep", "expired")
	}
	return removed
}

// drop removes el from the shard. The caller holds s.mu.
func (s *cacheShard[V]) drop(el *list.Element) {
	item := s.order.Remove(el).(*cacheItem[V])
	delete(s.entries, item.key)
}
