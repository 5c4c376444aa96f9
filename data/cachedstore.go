package data

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/ncobase/docstore/cache"
	"github.com/ncobase/docstore/logging/logger"
	"github.com/ncobase/docstore/paging"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultCountTTL is how long memoized counts stay valid.
const DefaultCountTTL = 30 * time.Second

// CachedStore decorates a paging.Store with a Redis-backed count memo.
// Counting is the expensive half of offset pagination on large collections;
// the memo keeps repeated page fetches under the same filter from re-counting
// on every request. Cache misses and Redis outages fall through to the live
// count. Find and Aggregate are never cached.
type CachedStore struct {
	store  paging.Store
	counts *cache.Cache[int64]
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedStore wraps store with a count memo keyed under the given name.
func NewCachedStore(store paging.Store, rc *redis.Client, name string, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCountTTL
	}
	return &CachedStore{
		store:  store,
		counts: cache.NewCache[int64](rc, "count:"+name),
		ttl:    ttl,
		logger: logger.StdLogger(),
	}
}

// Find delegates to the underlying store.
func (s *CachedStore) Find(ctx context.Context, filter bson.M, opts *paging.FindOptions) ([]bson.M, error) {
	return s.store.Find(ctx, filter, opts)
}

// Count returns the memoized count for the filter, counting live on a miss.
func (s *CachedStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	key := filterKey(filter)
	if cached, err := s.counts.Get(ctx, key); err == nil && cached != nil {
		return *cached, nil
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return 0, err
	}

	if err := s.counts.Set(ctx, key, &total, s.ttl); err != nil {
		s.logger.Debugf(ctx, "count memo write failed: %v", err)
	}
	return total, nil
}

// EstimatedCount returns the memoized estimate, estimating live on a miss.
func (s *CachedStore) EstimatedCount(ctx context.Context) (int64, error) {
	const key = "estimated"
	if cached, err := s.counts.Get(ctx, key); err == nil && cached != nil {
		return *cached, nil
	}

	total, err := s.store.EstimatedCount(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.counts.Set(ctx, key, &total, s.ttl); err != nil {
		s.logger.Debugf(ctx, "count memo write failed: %v", err)
	}
	return total, nil
}

// Aggregate delegates to the underlying store.
func (s *CachedStore) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	return s.store.Aggregate(ctx, pipeline)
}

// filterKey derives a stable cache key from a filter. encoding/json writes
// map keys in sorted order, so equal filters hash equally.
func filterKey(filter bson.M) string {
	b, err := json.Marshal(filter)
	if err != nil {
		return "unkeyed"
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}
