// Package data provides the data layer: MongoDB master/slave connections,
// the paging store implementation, and the optional Redis count memo.
package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/docstore/config"
	"github.com/ncobase/docstore/paging"
	"github.com/redis/go-redis/v9"
)

// Data represents the data layer implementation.
type Data struct {
	mongo    *MongoManager
	redis    *redis.Client
	database string
	countTTL time.Duration
}

// Option function type for configuring Data
type Option func(*Data)

// WithCountTTL sets how long memoized counts stay valid.
func WithCountTTL(ttl time.Duration) Option {
	return func(d *Data) {
		if ttl > 0 {
			d.countTTL = ttl
		}
	}
}

// New creates the data layer from configuration.
func New(conf *config.Data, opts ...Option) (*Data, func(), error) {
	if conf == nil || conf.MongoDB == nil {
		return nil, nil, errors.New("mongodb configuration is required")
	}

	mgr, err := NewMongoManager(conf.MongoDB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mongodb manager: %w", err)
	}

	rc, err := NewRedisClient(conf.Redis)
	if err != nil {
		_ = mgr.Close(context.Background())
		return nil, nil, err
	}

	d := &Data{
		mongo:    mgr,
		redis:    rc,
		database: conf.MongoDB.Database,
		countTTL: DefaultCountTTL,
	}
	for _, opt := range opts {
		opt(d)
	}

	cleanup := func() {
		_ = d.Close(context.Background())
	}
	return d, cleanup, nil
}

// Mongo returns the MongoDB manager.
func (d *Data) Mongo() *MongoManager {
	return d.mongo
}

// Redis returns the Redis client, or nil when not configured.
func (d *Data) Redis() *redis.Client {
	return d.redis
}

// Collection returns the paging store for a collection. Reads come from a
// balanced slave.
func (d *Data) Collection(name string) (*Collection, error) {
	coll, err := d.mongo.GetCollection(d.database, name, true)
	if err != nil {
		return nil, err
	}
	return NewCollection(coll), nil
}

// Store returns the paging store for a collection, decorated with the Redis
// count memo when Redis is configured.
func (d *Data) Store(name string) (paging.Store, error) {
	coll, err := d.Collection(name)
	if err != nil {
		return nil, err
	}
	if d.redis == nil {
		return coll, nil
	}
	return NewCachedStore(coll, d.redis, name, d.countTTL), nil
}

// Health checks MongoDB and, when configured, Redis.
func (d *Data) Health(ctx context.Context) error {
	if err := d.mongo.Health(ctx); err != nil {
		return err
	}
	if d.redis != nil {
		if err := d.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis health check failed: %w", err)
		}
	}
	return nil
}

// Close releases all connections.
func (d *Data) Close(ctx context.Context) error {
	var errs []error
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if d.mongo != nil {
		if err := d.mongo.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing data layer: %v", errs)
	}
	return nil
}
