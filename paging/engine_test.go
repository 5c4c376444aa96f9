package paging

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeStore is an in-memory Store with real filter, sort and window
// semantics, used to exercise the engine without a database.
type fakeStore struct {
	docs []bson.M

	findCalls      int
	countCalls     int
	estimatedCalls int
	aggregateCalls int
}

func (s *fakeStore) calls() int {
	return s.findCalls + s.countCalls + s.estimatedCalls + s.aggregateCalls
}

func (s *fakeStore) Find(ctx context.Context, filter bson.M, opts *FindOptions) ([]bson.M, error) {
	s.findCalls++

	var matched []bson.M
	for _, doc := range s.docs {
		if matchFilter(doc, filter) {
			matched = append(matched, doc)
		}
	}
	if opts != nil && len(opts.Sort) > 0 {
		sortDocs(matched, opts.Sort)
	}
	if opts != nil && opts.Skip > 0 {
		if opts.Skip >= int64(len(matched)) {
			matched = nil
		} else {
			matched = matched[opts.Skip:]
		}
	}
	if opts != nil && opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (s *fakeStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	s.countCalls++

	var n int64
	for _, doc := range s.docs {
		if matchFilter(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) EstimatedCount(ctx context.Context) (int64, error) {
	s.estimatedCalls++
	return int64(len(s.docs)), nil
}

func (s *fakeStore) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	s.aggregateCalls++

	docs := append([]bson.M(nil), s.docs...)
	for _, stage := range pipeline {
		if len(stage) == 0 {
			continue
		}
		op := stage[0]
		switch op.Key {
		case "$match":
			filter, _ := op.Value.(bson.M)
			var kept []bson.M
			for _, doc := range docs {
				if matchFilter(doc, filter) {
					kept = append(kept, doc)
				}
			}
			docs = kept
		case "$sort":
			if d, ok := op.Value.(bson.D); ok {
				sortDocs(docs, d)
			}
		case "$skip":
			n := toInt64(op.Value)
			if n >= int64(len(docs)) {
				docs = nil
			} else {
				docs = docs[n:]
			}
		case "$limit":
			n := toInt64(op.Value)
			if n < int64(len(docs)) {
				docs = docs[:n]
			}
		case "$count":
			// Mongo emits no document at all for an empty input set.
			if len(docs) == 0 {
				return nil, nil
			}
			name, _ := op.Value.(string)
			return []bson.M{{name: int64(len(docs))}}, nil
		default:
			return nil, fmt.Errorf("fake store: unsupported stage %q", op.Key)
		}
	}
	return docs, nil
}

func matchFilter(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		switch key {
		case "$and":
			for _, sub := range cond.(bson.A) {
				if !matchFilter(doc, sub.(bson.M)) {
					return false
				}
			}
		case "$or":
			matched := false
			for _, sub := range cond.(bson.A) {
				if matchFilter(doc, sub.(bson.M)) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		default:
			if ops, ok := cond.(bson.M); ok {
				for op, val := range ops {
					c := compareValues(doc[key], val)
					switch op {
					case "$gt":
						if c <= 0 {
							return false
						}
					case "$lt":
						if c >= 0 {
							return false
						}
					case "$eq":
						if c != 0 {
							return false
						}
					default:
						return false
					}
				}
			} else if compareValues(doc[key], cond) != 0 {
				return false
			}
		}
	}
	return true
}

func sortDocs(docs []bson.M, by bson.D) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, key := range by {
			c := compareValues(docs[i][key.Key], docs[j][key.Key])
			if c == 0 {
				continue
			}
			if toInt64(key.Value) < 0 {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case !av && bv:
				return -1
			case av && !bv:
				return 1
			}
			return 0
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	case primitive.ObjectID:
		if bv, ok := b.(primitive.ObjectID); ok {
			return bytes.Compare(av[:], bv[:])
		}
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func newTestEngine(docs []bson.M) (*Engine, *fakeStore) {
	store := &fakeStore{docs: docs}
	return New(store, WithConfig(testConfig())), store
}

// ageDocs builds n documents ascending by age with ties: ten documents share
// each age value.
func ageDocs(n int) []bson.M {
	docs := make([]bson.M, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, bson.M{
			"_id":  int64(i + 1),
			"age":  int64(i / 10),
			"name": fmt.Sprintf("user-%03d", i),
		})
	}
	return docs
}

// scoreDocs builds 45 documents in 5 score buckets of 9 documents each.
func scoreDocs() []bson.M {
	docs := make([]bson.M, 0, 45)
	for i := 0; i < 45; i++ {
		docs = append(docs, bson.M{
			"_id":   int64(i + 1),
			"score": int64(i % 5),
		})
	}
	return docs
}

func docIDs(docs []bson.M) []int64 {
	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc["_id"].(int64))
	}
	return ids
}

func TestPaginateTwoPagesDisjoint(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(100))
	ctx := context.Background()

	page1, err := engine.Paginate(ctx, &Options{
		Sort:  ParseSort("age"),
		Page:  1,
		Limit: 20,
	})
	if err != nil {
		t.Fatalf("page 1 error: %v", err)
	}
	page2, err := engine.Paginate(ctx, &Options{
		Sort:  ParseSort("age"),
		Page:  2,
		Limit: 20,
	})
	if err != nil {
		t.Fatalf("page 2 error: %v", err)
	}

	if len(page1.Docs) != 20 || len(page2.Docs) != 20 {
		t.Fatalf("page sizes = %d, %d, want 20, 20", len(page1.Docs), len(page2.Docs))
	}

	seen := map[int64]bool{}
	for _, id := range docIDs(page1.Docs) {
		seen[id] = true
	}
	for _, id := range docIDs(page2.Docs) {
		if seen[id] {
			t.Errorf("document %d appears on both pages", id)
		}
	}

	if page1.HasPrev {
		t.Error("page 1 should not have a previous page")
	}
	if !page1.HasNext {
		t.Error("page 1 should have a next page")
	}
	if !page2.HasPrev {
		t.Error("page 2 should have a previous page")
	}
	if page1.Total != 100 || page1.Pages != 5 {
		t.Errorf("total = %d, pages = %d, want 100, 5", page1.Total, page1.Pages)
	}
	if page1.Method != MethodOffset || page1.Kind() != MethodOffset {
		t.Errorf("method = %q", page1.Method)
	}
}

func TestPaginateDefaults(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(30))

	result, err := engine.Paginate(context.Background(), &Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Page != 1 {
		t.Errorf("page = %d, want 1", result.Page)
	}
	if result.Limit != 10 {
		t.Errorf("limit = %d, want default 10", result.Limit)
	}
	if len(result.Docs) != 10 {
		t.Errorf("docs = %d, want 10", len(result.Docs))
	}
}

func TestPaginateExceedsMaxPageBeforeStore(t *testing.T) {
	engine, store := newTestEngine(ageDocs(10))

	_, err := engine.Paginate(context.Background(), &Options{Page: 1001})
	if !errors.Is(err, ErrExceedsMaxPage) {
		t.Fatalf("expected ErrExceedsMaxPage, got %v", err)
	}
	if store.calls() != 0 {
		t.Errorf("store was called %d times before validation failed", store.calls())
	}
}

func TestPaginateDeepPageWarning(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(10))

	result, err := engine.Paginate(context.Background(), &Options{Page: 101, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Warning == "" {
		t.Error("expected a deep pagination warning")
	}

	shallow, err := engine.Paginate(context.Background(), &Options{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shallow.Warning != "" {
		t.Errorf("unexpected warning on shallow page: %q", shallow.Warning)
	}
}

func TestPaginateDoesNotMutateFilter(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(20))

	filter := bson.M{"age": int64(1)}
	if _, err := engine.Paginate(context.Background(), &Options{Filter: filter}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filter) != 1 || compareValues(filter["age"], int64(1)) != 0 {
		t.Errorf("filter was mutated: %#v", filter)
	}
}

func TestPaginateEstimatedCount(t *testing.T) {
	store := &fakeStore{docs: ageDocs(50)}
	cfg := testConfig()
	cfg.UseEstimatedCount = true
	engine := New(store, WithConfig(cfg))

	if _, err := engine.Paginate(context.Background(), &Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.estimatedCalls != 1 || store.countCalls != 0 {
		t.Errorf("estimated = %d, exact = %d, want 1, 0", store.estimatedCalls, store.countCalls)
	}

	// A non-empty filter cannot use the estimate.
	if _, err := engine.Paginate(context.Background(), &Options{Filter: bson.M{"age": int64(1)}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.countCalls != 1 {
		t.Errorf("exact count calls = %d, want 1", store.countCalls)
	}
}

func TestStreamRequiresSort(t *testing.T) {
	engine, store := newTestEngine(ageDocs(10))

	_, err := engine.Stream(context.Background(), &Options{Limit: 5})
	if !errors.Is(err, ErrSortRequired) {
		t.Fatalf("expected ErrSortRequired, got %v", err)
	}
	if store.calls() != 0 {
		t.Errorf("store was called %d times before validation failed", store.calls())
	}
}

func TestStreamRequiresIDSortBeforeStore(t *testing.T) {
	engine, store := newTestEngine(ageDocs(10))

	_, err := engine.Stream(context.Background(), &Options{
		Sort: ParseSort("age,name"),
	})
	if !errors.Is(err, ErrRequiresIDSort) {
		t.Fatalf("expected ErrRequiresIDSort, got %v", err)
	}
	if store.calls() != 0 {
		t.Errorf("store was called %d times before validation failed", store.calls())
	}
}

func TestStreamInvalidCursorBeforeStore(t *testing.T) {
	engine, store := newTestEngine(ageDocs(10))

	_, err := engine.Stream(context.Background(), &Options{
		Sort:  ParseSort("age"),
		After: "not-a-real-token",
	})
	if !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("expected ErrInvalidCursor, got %v", err)
	}
	if store.calls() != 0 {
		t.Errorf("store was called %d times before validation failed", store.calls())
	}
}

func TestStreamCursorSortMismatchBeforeStore(t *testing.T) {
	engine, store := newTestEngine(ageDocs(10))
	ctx := context.Background()

	first, err := engine.Stream(ctx, &Options{Sort: ParseSort("age"), Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Next == nil {
		t.Fatal("expected a next cursor")
	}
	store.findCalls = 0

	_, err = engine.Stream(ctx, &Options{
		Sort:  ParseSort("-age"),
		After: *first.Next,
	})
	if !errors.Is(err, ErrCursorSortMismatch) {
		t.Fatalf("expected ErrCursorSortMismatch, got %v", err)
	}
	if store.calls() != 0 {
		t.Errorf("store was called %d times before validation failed", store.calls())
	}
}

func TestStreamCursorVersionMismatchBeforeStore(t *testing.T) {
	engine, store := newTestEngine(ageDocs(10))

	sort := SortSpec{
		{Field: "age", Dir: Asc},
		{Field: "_id", Dir: Asc},
	}
	token, err := EncodeCursor(bson.M{"age": int64(1), "_id": int64(3)}, "age", sort, 2, "_id")
	if err != nil {
		t.Fatalf("EncodeCursor error: %v", err)
	}

	_, err = engine.Stream(context.Background(), &Options{
		Sort:  ParseSort("age"),
		After: token,
	})
	if !errors.Is(err, ErrCursorVersionMismatch) {
		t.Fatalf("expected ErrCursorVersionMismatch, got %v", err)
	}
	if store.calls() != 0 {
		t.Errorf("store was called %d times before validation failed", store.calls())
	}
}

func TestStreamDescendingWithTies(t *testing.T) {
	engine, _ := newTestEngine(scoreDocs())
	ctx := context.Background()

	seen := map[int64]bool{}
	var lastScore, lastID int64
	first := true
	token := ""
	pages := 0

	for {
		opts := &Options{Sort: ParseSort("-score"), Limit: 15}
		if token != "" {
			opts.After = token
		}
		result, err := engine.Stream(ctx, opts)
		if err != nil {
			t.Fatalf("page %d error: %v", pages+1, err)
		}
		pages++

		for _, doc := range result.Docs {
			id := doc["_id"].(int64)
			score := doc["score"].(int64)
			if seen[id] {
				t.Fatalf("document %d served twice", id)
			}
			seen[id] = true

			if !first {
				if score > lastScore {
					t.Fatalf("score order violated: %d after %d", score, lastScore)
				}
				if score == lastScore && id > lastID {
					t.Fatalf("id tie-break violated: %d after %d", id, lastID)
				}
			}
			lastScore, lastID = score, id
			first = false
		}

		if !result.HasMore {
			if result.Next != nil {
				t.Error("exhausted stream should have a nil next cursor")
			}
			break
		}
		if result.Next == nil {
			t.Fatal("hasMore without a next cursor")
		}
		token = *result.Next
	}

	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	if len(seen) != 45 {
		t.Errorf("covered %d documents, want 45", len(seen))
	}
}

func TestStreamCoversAllDocumentsOnce(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(100))
	ctx := context.Background()

	seen := map[int64]bool{}
	token := ""
	for {
		opts := &Options{Sort: ParseSort("age"), Limit: 7}
		if token != "" {
			opts.Cursor = token // alias of After
		}
		result, err := engine.Stream(ctx, opts)
		if err != nil {
			t.Fatalf("stream error: %v", err)
		}
		for _, id := range docIDs(result.Docs) {
			if seen[id] {
				t.Fatalf("document %d served twice", id)
			}
			seen[id] = true
		}
		if !result.HasMore {
			break
		}
		token = *result.Next
	}

	if len(seen) != 100 {
		t.Errorf("covered %d documents, want 100", len(seen))
	}
}

func TestStreamLastPartialPage(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(10))

	result, err := engine.Stream(context.Background(), &Options{Sort: ParseSort("age"), Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasMore {
		t.Error("exact-fit page should not report more")
	}
	if result.Next != nil {
		t.Errorf("next = %q, want nil", *result.Next)
	}
	if result.Method != MethodKeyset || result.Kind() != MethodKeyset {
		t.Errorf("method = %q", result.Method)
	}
}

// A cursor is a pure position marker: it carries no reference to the filter
// set it was minted under, so replaying it against a different filter is
// structurally permitted and pages that filter's documents past the position.
func TestStreamCursorReplayAcrossFilters(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(100))
	ctx := context.Background()

	first, err := engine.Stream(ctx, &Options{
		Filter: bson.M{"age": bson.M{"$lt": int64(5)}},
		Sort:   ParseSort("age"),
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Next == nil {
		t.Fatal("expected a next cursor")
	}

	replay, err := engine.Stream(ctx, &Options{
		Filter: bson.M{"age": bson.M{"$gt": int64(7)}},
		Sort:   ParseSort("age"),
		Limit:  10,
		After:  *first.Next,
	})
	if err != nil {
		t.Fatalf("cursor replay should be structurally permitted, got %v", err)
	}
	for _, doc := range replay.Docs {
		if age := doc["age"].(int64); age <= 7 {
			t.Errorf("replacement filter not applied: age %d", age)
		}
	}
}

func TestAggregatePaginate(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(100))

	result, err := engine.AggregatePaginate(context.Background(), &AggregateOptions{
		Pipeline: mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"age": bson.M{"$lt": int64(5)}}}},
			{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		},
		Page:  2,
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 50 {
		t.Errorf("total = %d, want 50", result.Total)
	}
	if result.Pages != 5 {
		t.Errorf("pages = %d, want 5", result.Pages)
	}
	if len(result.Docs) != 10 {
		t.Errorf("docs = %d, want 10", len(result.Docs))
	}
	if !result.HasNext || !result.HasPrev {
		t.Errorf("hasNext = %v, hasPrev = %v, want true, true", result.HasNext, result.HasPrev)
	}
	if ids := docIDs(result.Docs); ids[0] != 11 {
		t.Errorf("window starts at %d, want 11", ids[0])
	}
	if result.Method != MethodAggregate || result.Kind() != MethodAggregate {
		t.Errorf("method = %q", result.Method)
	}
}

func TestAggregatePaginateEmpty(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(20))

	result, err := engine.AggregatePaginate(context.Background(), &AggregateOptions{
		Pipeline: mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"name": "nonexistent"}}},
		},
		Page:  1,
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("total = %d, want 0", result.Total)
	}
	if result.Pages != 0 {
		t.Errorf("pages = %d, want 0", result.Pages)
	}
	if len(result.Docs) != 0 {
		t.Errorf("docs = %d, want 0", len(result.Docs))
	}
	if result.Docs == nil {
		t.Error("docs should be an empty slice, not nil")
	}
}

func TestAggregatePaginateExceedsMaxPageBeforeStore(t *testing.T) {
	engine, store := newTestEngine(ageDocs(10))

	_, err := engine.AggregatePaginate(context.Background(), &AggregateOptions{Page: 1001})
	if !errors.Is(err, ErrExceedsMaxPage) {
		t.Fatalf("expected ErrExceedsMaxPage, got %v", err)
	}
	if store.calls() != 0 {
		t.Errorf("store was called %d times before validation failed", store.calls())
	}
}

func TestQueryModeDetection(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		opts *Options
		want Method
	}{
		{"nothing defaults to offset", &Options{}, MethodOffset},
		{"page selects offset", &Options{Page: 2}, MethodOffset},
		{"cursor selects keyset", nil, MethodKeyset}, // built below
		{"sort selects keyset", &Options{Sort: ParseSort("age")}, MethodKeyset},
		{"page wins over sort", &Options{Page: 1, Sort: ParseSort("age")}, MethodOffset},
	}

	for _, c := range cases {
		engine, _ := newTestEngine(ageDocs(30))
		opts := c.opts
		if opts == nil {
			first, err := engine.Stream(ctx, &Options{Sort: ParseSort("age"), Limit: 5})
			if err != nil {
				t.Fatalf("%s: seed stream error: %v", c.name, err)
			}
			opts = &Options{Sort: ParseSort("age"), After: *first.Next}
		}

		result, err := engine.Query(ctx, opts)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if result.Kind() != c.want {
			t.Errorf("%s: method = %q, want %q", c.name, result.Kind(), c.want)
		}
	}
}

func TestQueryDefaultsToFirstPage(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(25))

	result, err := engine.Query(context.Background(), &Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	offset, ok := result.(*OffsetResult)
	if !ok {
		t.Fatalf("result type = %T, want *OffsetResult", result)
	}
	if offset.Page != 1 {
		t.Errorf("page = %d, want 1", offset.Page)
	}
}

// Tokens are opaque to callers but must stay JSON-over-base64 internally so
// a format version bump is the only compatibility seam.
func TestCursorTokenIsURLSafe(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(30))

	result, err := engine.Stream(context.Background(), &Options{Sort: ParseSort("age"), Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Next == nil {
		t.Fatal("expected a next cursor")
	}
	if _, err := base64.RawURLEncoding.DecodeString(*result.Next); err != nil {
		t.Errorf("token is not URL-safe base64: %v", err)
	}
}

func TestResultJSONShapes(t *testing.T) {
	engine, _ := newTestEngine(ageDocs(30))
	ctx := context.Background()

	offset, err := engine.Paginate(ctx, &Options{Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(offset)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var shape map[string]any
	if err := json.Unmarshal(b, &shape); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if shape["method"] != "offset" {
		t.Errorf("method = %v", shape["method"])
	}
	for _, key := range []string{"docs", "page", "limit", "total", "pages", "hasNext", "hasPrev"} {
		if _, ok := shape[key]; !ok {
			t.Errorf("offset shape missing %q", key)
		}
	}

	keyset, err := engine.Stream(ctx, &Options{Sort: ParseSort("age"), Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err = json.Marshal(keyset)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	shape = map[string]any{}
	if err := json.Unmarshal(b, &shape); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if shape["method"] != "keyset" {
		t.Errorf("method = %v", shape["method"])
	}
	for _, key := range []string{"docs", "limit", "hasMore", "next"} {
		if _, ok := shape[key]; !ok {
			t.Errorf("keyset shape missing %q", key)
		}
	}
	for _, key := range []string{"total", "pages"} {
		if _, ok := shape[key]; ok {
			t.Errorf("keyset shape must omit %q", key)
		}
	}
}
