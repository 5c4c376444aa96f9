package data

import (
	"context"

	"github.com/ncobase/docstore/paging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection adapts a *mongo.Collection to the paging.Store contract.
type Collection struct {
	coll *mongo.Collection
}

// NewCollection wraps a mongo collection.
func NewCollection(coll *mongo.Collection) *Collection {
	return &Collection{coll: coll}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.coll.Name()
}

// Find runs a filtered, sorted, windowed read.
func (c *Collection) Find(ctx context.Context, filter bson.M, opts *paging.FindOptions) ([]bson.M, error) {
	findOpts := options.Find()
	if opts != nil {
		if len(opts.Sort) > 0 {
			findOpts.SetSort(opts.Sort)
		}
		if opts.Skip > 0 {
			findOpts.SetSkip(opts.Skip)
		}
		if opts.Limit > 0 {
			findOpts.SetLimit(opts.Limit)
		}
		if opts.Projection != nil {
			findOpts.SetProjection(opts.Projection)
		}
	}

	cursor, err := c.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Count returns the exact number of documents matching the filter.
func (c *Collection) Count(ctx context.Context, filter bson.M) (int64, error) {
	return c.coll.CountDocuments(ctx, filter)
}

// EstimatedCount returns the collection-metadata document count estimate.
func (c *Collection) EstimatedCount(ctx context.Context) (int64, error) {
	return c.coll.EstimatedDocumentCount(ctx)
}

// Aggregate runs a pipeline and collects its documents.
func (c *Collection) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
