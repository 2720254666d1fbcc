package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultCacheTTL controls how long vectors stay cached
const DefaultCacheTTL = 24 * time.Hour

// CacheOptions configures a Cached embedder
type CacheOptions struct {
	// RedisURL enables the L2 tier; empty disables it
	RedisURL   string
	TTL        time.Duration
	MaxEntries int
}

// Cached wraps an Embedder with a 2-tier cache: L1 in-memory + L2 Redis.
// L1 is lost on restart; L2 survives restarts and is shared between processes.
type Cached struct {
	inner      Embedder
	l1         sync.Map      // key -> *cacheEntry
	rdb        *redis.Client // nil if Redis unavailable
	ttl        time.Duration
	maxEntries int
	logger     *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	vec       []float32
	expiresAt time.Time
}

// NewCached wraps inner. An unreachable or invalid Redis URL logs a warning and
// leaves only the L1 tier active.
func NewCached(ctx context.Context, inner Embedder, opts CacheOptions, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultCacheTTL
	}
	c := &Cached{inner: inner, ttl: opts.TTL, maxEntries: opts.MaxEntries, logger: logger}

	if opts.RedisURL != "" {
		ropts, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			logger.Warn("embedding cache: invalid redis URL, L2 disabled", zap.Error(err))
			return c
		}
		rdb := redis.NewClient(ropts)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("embedding cache: redis unreachable, L2 disabled", zap.Error(err))
			_ = rdb.Close()
			return c
		}
		c.rdb = rdb
		logger.Info("embedding cache: L2 redis connected", zap.String("addr", ropts.Addr))
	}

	return c
}

// CacheKey builds a deterministic cache key for a backend and text
func CacheKey(backend, text string) string {
	hash := sha256.Sum256([]byte(backend + "|" + text))
	return fmt.Sprintf("emb:%x", hash[:12])
}

// Embed serves cached vectors and embeds only the misses, in a single batch
func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	keys := make([]string, len(texts))
	var missIdx []int
	var missTexts []string

	for i, t := range texts {
		keys[i] = CacheKey(c.inner.Name(), t)
		if vec, ok := c.get(ctx, keys[i]); ok {
			out[i] = vec
			c.hits.Add(1)
			continue
		}
		c.misses.Add(1)
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	vecs, err := c.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d, got %d", len(missTexts), len(vecs))
	}

	c.evictIfNeeded(len(vecs))
	for j, i := range missIdx {
		out[i] = vecs[j]
		c.set(ctx, keys[i], vecs[j])
	}
	return out, nil
}

// Available delegates to the wrapped backend
func (c *Cached) Available() bool { return c.inner.Available() }

// Name delegates to the wrapped backend
func (c *Cached) Name() string { return c.inner.Name() }

// Stats returns hit and miss counters
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Close closes the Redis client and the wrapped backend when it holds resources
func (c *Cached) Close() error {
	var err error
	if c.rdb != nil {
		err = c.rdb.Close()
	}
	if closer, ok := c.inner.(interface{ Close() error }); ok {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (c *Cached) get(ctx context.Context, key string) ([]float32, bool) {
	if val, ok := c.l1.Load(key); ok {
		entry := val.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			return entry.vec, true
		}
		c.l1.Delete(key)
	}

	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("embedding cache: L2 get failed", zap.Error(err))
		}
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, false
	}
	c.l1.Store(key, &cacheEntry{vec: vec, expiresAt: time.Now().Add(c.ttl)})
	return vec, true
}

func (c *Cached) set(ctx context.Context, key string, vec []float32) {
	c.l1.Store(key, &cacheEntry{vec: vec, expiresAt: time.Now().Add(c.ttl)})

	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Debug("embedding cache: L2 set failed", zap.Error(err))
	}
}

// evictIfNeeded makes room for incoming entries when L1 is bounded.
// Expired entries go first, then the entries closest to expiry.
func (c *Cached) evictIfNeeded(incoming int) {
	if c.maxEntries <= 0 {
		return
	}

	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count+incoming <= c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if now.After(val.(*cacheEntry).expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return true
	})

	for count+incoming > c.maxEntries && count > 0 {
		var oldestKey any
		oldestAt := now.Add(c.ttl + time.Hour)
		c.l1.Range(func(key, val any) bool {
			if e := val.(*cacheEntry); e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			break
		}
		c.l1.Delete(oldestKey)
		count--
	}
}
