package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/i18n"
)

const defaultNumShards = 16

// bucket is one caller's token bucket.
type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// ShardedRateLimiter gives every caller a token bucket holding limit tokens
// that refills at limit per window. Buckets are spread over shards by xxhash.
type ShardedRateLimiter struct {
	limit  int
	window time.Duration
	every  rate.Limit
	shards []*limiterShard
	clock  func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows limit requests per window for each caller.
func NewRateLimiter(limit int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(limit, window, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with an explicit shard count.
func NewShardedRateLimiter(limit int, window time.Duration, numShards int) *ShardedRateLimiter {
	return newRateLimiter(limit, window, numShards, time.Now, time.Minute)
}

func newRateLimiter(limit int, window time.Duration, numShards int, clock func() time.Time, sweepEvery time.Duration) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if window <= 0 {
		window = time.Minute
	}

	rl := &ShardedRateLimiter{
		limit:  limit,
		window: window,
		every:  rate.Limit(float64(limit) / window.Seconds()),
		shards: make([]*limiterShard, numShards),
		clock:  clock,
		done:   make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{buckets: make(map[string]*bucket)}
	}

	if sweepEvery > 0 {
		go rl.sweepLoop(sweepEvery)
	}
	return rl
}

// take spends one token for key. It returns the tokens left and, when the
// bucket is empty, how long until the next token.
func (rl *ShardedRateLimiter) take(key string) (remaining int, retryAfter time.Duration, ok bool) {
	shard := rl.shards[xxhash.Sum64String(key)%uint64(len(rl.shards))]
	now := rl.clock()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	b, found := shard.buckets[key]
	if !found {
		b = &bucket{limiter: rate.NewLimiter(rl.every, rl.limit)}
		shard.buckets[key] = b
	}
	b.lastSeen = now

	if b.limiter.AllowN(now, 1) {
		return int(b.limiter.TokensAt(now)), 0, true
	}

	missing := 1 - b.limiter.TokensAt(now)
	if rl.every <= 0 {
		return 0, rl.window, false
	}
	return 0, time.Duration(missing / float64(rl.every) * float64(time.Second)), false
}

// RateLimit limits requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// UserRateLimit limits requests per signed-in user and falls back to the
// client IP for anonymous callers.
func (rl *ShardedRateLimiter) UserRateLimit() gin.HandlerFunc {
	return rl.middleware(callerKey)
}

func (rl *ShardedRateLimiter) middleware(keyOf func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		remaining, retryAfter, ok := rl.take(keyOf(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ok {
			c.Next()
			return
		}

		seconds := int(math.Ceil(retryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))

		locale := i18n.GetLocale(c)
		message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, locale)
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
	}
}

func callerKey(c *gin.Context) string {
	if identity, ok := GetIdentity(c); ok {
		return "user:" + identity.Email
	}
	return "ip:" + c.ClientIP()
}

func (rl *ShardedRateLimiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// sweep forgets callers idle for a full window. Their buckets would be
// full again, so a fresh bucket behaves the same.
func (rl *ShardedRateLimiter) sweep() int {
	cutoff := rl.clock().Add(-rl.window)
	removed := 0
	for _, shard := range rl.shards {
		shard.mu.Lock()
		for key, b := range shard.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(shard.buckets, key)
				removed++
			}
		}
		shard.mu.Unlock()
	}
	return removed
}

// Stop ends the sweep loop. It may be called more than once.
func (rl *ShardedRateLimiter) Stop() {
	if rl == nil {
		return
	}
	rl.stopOnce.Do(func() { close(rl.done) })
}

// Stats reports how many callers are tracked, in total and per shard.
func (rl *ShardedRateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.buckets)
		shard.mu.Unlock()
		total += perShard[i]
	}
	return total, perShard
}
