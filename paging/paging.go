package paging

import (
	"context"
	"fmt"

	"github.com/ncobase/docstore/ecode"
	"github.com/ncobase/docstore/logging/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Config holds the engine configuration. It is applied once at construction
// and immutable thereafter.
type Config struct {
	DefaultLimit      int
	MaxLimit          int
	MaxPage           int
	DeepPageThreshold int
	CursorVersion     int
	UseEstimatedCount bool
	IDField           string
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:      10,
		MaxLimit:          100,
		MaxPage:           10000,
		DeepPageThreshold: 100,
		CursorVersion:     1,
		UseEstimatedCount: false,
		IDField:           "_id",
	}
}

// normalized fills zero-valued fields with defaults.
func (c *Config) normalized() *Config {
	def := DefaultConfig()
	out := *c
	if out.DefaultLimit <= 0 {
		out.DefaultLimit = def.DefaultLimit
	}
	if out.MaxLimit <= 0 {
		out.MaxLimit = def.MaxLimit
	}
	if out.CursorVersion == 0 {
		out.CursorVersion = def.CursorVersion
	}
	if out.IDField == "" {
		out.IDField = def.IDField
	}
	return &out
}

// FindOptions carries the read options passed to the store.
type FindOptions struct {
	Sort       bson.D
	Skip       int64
	Limit      int64
	Projection any
}

// Store is the document store read contract the engine runs against.
type Store interface {
	Find(ctx context.Context, filter bson.M, opts *FindOptions) ([]bson.M, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	EstimatedCount(ctx context.Context) (int64, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error)
}

// Options carries one page request. Limit and Page accept a number or a
// numeric string, matching what a query-string parser produces. After and
// Cursor are equivalent aliases for the cursor token. Select is passed to the
// store untouched; when streaming, a projection must keep the sort fields or
// the next cursor cannot be minted.
type Options struct {
	Filter bson.M
	Sort   SortSpec
	Limit  any
	Page   any
	After  string
	Cursor string
	Select any
}

// AggregateOptions carries one aggregate page request.
type AggregateOptions struct {
	Pipeline mongo.Pipeline
	Limit    any
	Page     any
}

// Engine pages through result sets three ways: offset, keyset and pipeline
// aggregated. It is stateless beyond its immutable configuration and safe for
// concurrent use; cancellation and timeouts are delegated to the store.
type Engine struct {
	store  Store
	cfg    *Config
	logger *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the engine configuration.
func WithConfig(cfg *Config) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.cfg = cfg.normalized()
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates a pagination engine over the given store.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		cfg:    DefaultConfig(),
		logger: logger.StdLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Query dispatches to the right mode for the request: an explicit page
// selects offset mode, a cursor selects keyset mode, a bare sort selects
// keyset mode, and nothing at all defaults to offset mode at page 1. Page
// always wins over sort-triggered keyset selection.
func (e *Engine) Query(ctx context.Context, opts *Options) (Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	switch {
	case hasRawValue(opts.Page):
		return e.Paginate(ctx, opts)
	case opts.After != "" || opts.Cursor != "":
		return e.Stream(ctx, opts)
	case len(opts.Sort) > 0:
		return e.Stream(ctx, opts)
	default:
		return e.Paginate(ctx, opts)
	}
}

// Paginate serves one offset-mode page. The count and the data fetch run
// concurrently; their consistency under concurrent writes is whatever the
// store's isolation provides.
func (e *Engine) Paginate(ctx context.Context, opts *Options) (*OffsetResult, error) {
	if opts == nil {
		opts = &Options{}
	}

	limit := ValidateLimit(opts.Limit, e.cfg)
	page, err := ValidatePage(opts.Page, e.cfg)
	if err != nil {
		return nil, err
	}

	filter := opts.Filter
	if filter == nil {
		filter = bson.M{}
	}

	var total int64
	countErr := make(chan error, 1)
	go func() {
		t, err := e.total(ctx, filter)
		total = t
		countErr <- err
	}()

	docs, err := e.store.Find(ctx, filter, &FindOptions{
		Sort:       opts.Sort.Normalize(e.cfg.IDField).Document(),
		Skip:       Skip(page, limit),
		Limit:      int64(limit),
		Projection: opts.Select,
	})
	cerr := <-countErr
	if err != nil {
		return nil, err
	}
	if cerr != nil {
		return nil, cerr
	}
	if docs == nil {
		docs = []bson.M{}
	}

	pages := TotalPages(total, limit)
	result := &OffsetResult{
		Method:  MethodOffset,
		Docs:    docs,
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
	if DeepPage(page, e.cfg.DeepPageThreshold) {
		result.Warning = deepPageWarning(page, e.cfg.DeepPageThreshold)
		e.logger.Warnf(ctx, "deep offset pagination: page %d beyond threshold %d", page, e.cfg.DeepPageThreshold)
	}
	return result, nil
}

// Stream serves one keyset-mode page. It requires an explicit sort, fetches
// limit+1 documents to detect a further page, and mints the next cursor from
// the last returned document.
func (e *Engine) Stream(ctx context.Context, opts *Options) (*KeysetResult, error) {
	if opts == nil {
		opts = &Options{}
	}

	limit := ValidateLimit(opts.Limit, e.cfg)

	if len(opts.Sort) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSortRequired, ecode.FieldIsRequired("sort"))
	}
	sort, err := opts.Sort.Normalize(e.cfg.IDField).ValidateKeyset(e.cfg.IDField)
	if err != nil {
		return nil, err
	}

	filter := opts.Filter
	if filter == nil {
		filter = bson.M{}
	}

	token := opts.After
	if token == "" {
		token = opts.Cursor
	}
	if token != "" {
		cur, err := DecodeCursor(token)
		if err != nil {
			return nil, err
		}
		if err := validateCursorSort(cur.Sort, sort); err != nil {
			return nil, err
		}
		if err := validateCursorVersion(cur.Version, e.cfg.CursorVersion); err != nil {
			return nil, err
		}
		filter = KeysetFilter(filter, sort, cur.Value.Interface(), cur.ID.Interface(), e.cfg.IDField)
	}

	docs, err := e.store.Find(ctx, filter, &FindOptions{
		Sort:       sort.Document(),
		Limit:      int64(limit) + 1,
		Projection: opts.Select,
	})
	if err != nil {
		return nil, err
	}

	hasMore := len(docs) > limit
	if hasMore {
		docs = docs[:limit]
	}
	if docs == nil {
		docs = []bson.M{}
	}

	var next *string
	if hasMore && len(docs) > 0 {
		token, err := EncodeCursor(docs[len(docs)-1], sort.Primary(e.cfg.IDField), sort, e.cfg.CursorVersion, e.cfg.IDField)
		if err != nil {
			return nil, err
		}
		next = &token
	}

	return &KeysetResult{
		Method:  MethodKeyset,
		Docs:    docs,
		Limit:   limit,
		HasMore: hasMore,
		Next:    next,
	}, nil
}

// AggregatePaginate serves one page of a caller-provided pipeline. The total
// comes from a parallel $count-shaped execution of the same pipeline, the
// page from a windowed execution. Empty result sets are a page, not an error.
func (e *Engine) AggregatePaginate(ctx context.Context, opts *AggregateOptions) (*AggregateResult, error) {
	if opts == nil {
		opts = &AggregateOptions{}
	}

	limit := ValidateLimit(opts.Limit, e.cfg)
	page, err := ValidatePage(opts.Page, e.cfg)
	if err != nil {
		return nil, err
	}

	countPipeline := make(mongo.Pipeline, 0, len(opts.Pipeline)+1)
	countPipeline = append(countPipeline, opts.Pipeline...)
	countPipeline = append(countPipeline, bson.D{{Key: "$count", Value: "total"}})

	windowPipeline := make(mongo.Pipeline, 0, len(opts.Pipeline)+2)
	windowPipeline = append(windowPipeline, opts.Pipeline...)
	windowPipeline = append(windowPipeline,
		bson.D{{Key: "$skip", Value: Skip(page, limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	)

	var total int64
	countErr := make(chan error, 1)
	go func() {
		counts, err := e.store.Aggregate(ctx, countPipeline)
		if err == nil && len(counts) > 0 {
			total = toInt64(counts[0]["total"])
		}
		countErr <- err
	}()

	docs, err := e.store.Aggregate(ctx, windowPipeline)
	cerr := <-countErr
	if err != nil {
		return nil, err
	}
	if cerr != nil {
		return nil, cerr
	}
	if docs == nil {
		docs = []bson.M{}
	}

	pages := TotalPages(total, limit)
	result := &AggregateResult{
		Method:  MethodAggregate,
		Docs:    docs,
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
	if DeepPage(page, e.cfg.DeepPageThreshold) {
		result.Warning = deepPageWarning(page, e.cfg.DeepPageThreshold)
		e.logger.Warnf(ctx, "deep aggregate pagination: page %d beyond threshold %d", page, e.cfg.DeepPageThreshold)
	}
	return result, nil
}

// total counts matching documents, substituting the store's estimate for an
// unfiltered count when configured.
func (e *Engine) total(ctx context.Context, filter bson.M) (int64, error) {
	if e.cfg.UseEstimatedCount && len(filter) == 0 {
		return e.store.EstimatedCount(ctx)
	}
	return e.store.Count(ctx, filter)
}

func deepPageWarning(page, threshold int) string {
	return fmt.Sprintf("page %d is beyond the deep pagination threshold (%d); consider keyset pagination", page, threshold)
}

// hasRawValue reports whether a raw numeric parameter was supplied at all.
func hasRawValue(raw any) bool {
	if raw == nil {
		return false
	}
	if s, ok := raw.(string); ok {
		return s != ""
	}
	return true
}

// toInt64 coerces the numeric types a $count stage may produce.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
