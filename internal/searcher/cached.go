package searcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/memvid-gateway/internal/db"
	"github.com/kailas-cloud/memvid-gateway/internal/domain"
)

const cacheKeyPrefix = "memvid:search_cache:"

// cacheStore is the consumer interface for the response cache (ISP).
type cacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cached is a read-through Search cache decorating another Searcher. Ask and
// GetState pass through uncached. Cache failures degrade to the inner backend
// and never surface to callers.
type Cached struct {
	inner      Searcher
	store      cacheStore
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

var _ Searcher = (*Cached)(nil)

// NewCached creates the caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func NewCached(
	inner Searcher,
	store cacheStore,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{
		inner:      inner,
		store:      store,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search returns a cached response or calls the inner backend. Clamped
// parameters form the cache key so equivalent requests share an entry.
func (c *Cached) Search(ctx context.Context, query string, topK, snippetChars int32) (domain.SearchResponse, error) {
	key := c.cacheKey(query, domain.ClampTopK(topK), domain.ClampSnippetChars(snippetChars))

	if resp, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return resp, nil
	}
	c.incCache("miss")

	resp, err := c.inner.Search(ctx, query, topK, snippetChars)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	c.putToCache(ctx, key, resp)
	return resp, nil
}

// Ask always hits the backend; answers depend on mutable engine state.
func (c *Cached) Ask(ctx context.Context, req domain.AskRequest) (domain.AskResponse, error) {
	return c.inner.Ask(ctx, req)
}

// GetState always hits the backend.
func (c *Cached) GetState(ctx context.Context, entity, slot string) (domain.StateResponse, error) {
	return c.inner.GetState(ctx, entity, slot)
}

// FrameCount delegates to the inner backend.
func (c *Cached) FrameCount() int32 { return c.inner.FrameCount() }

// MemvidFile delegates to the inner backend.
func (c *Cached) MemvidFile() string { return c.inner.MemvidFile() }

// IsReady delegates to the inner backend; the cache is an optimization, not
// a dependency.
func (c *Cached) IsReady() bool { return c.inner.IsReady() }

func (c *Cached) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cached) cacheKey(query string, topK, snippetChars int32) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%d", query, topK, snippetChars))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *Cached) getFromCache(ctx context.Context, key string) (domain.SearchResponse, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("failed to get cached search response", zap.String("key", key), zap.Error(err))
		}
		return domain.SearchResponse{}, false
	}

	var resp domain.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("failed to parse cached search response", zap.String("key", key), zap.Error(err))
		return domain.SearchResponse{}, false
	}
	return resp, true
}

func (c *Cached) putToCache(ctx context.Context, key string, resp domain.SearchResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("failed to encode search response for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("failed to cache search response", zap.String("key", key), zap.Error(err))
	}
}
