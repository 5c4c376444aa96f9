// Package paging implements the pagination engine over the document store:
// offset pages, keyset (seek) streams and aggregation-pipeline pages, behind
// a single mode-detecting entry point.
//
// # Modes
//
// Offset mode answers "give me page N" and carries an exact (or estimated)
// total:
//
//	result, err := engine.Paginate(ctx, &paging.Options{
//	    Filter: bson.M{"status": "active"},
//	    Page:   2,
//	    Limit:  20,
//	})
//	// {method:"offset", docs, page, limit, total, pages, hasNext, hasPrev}
//
// Keyset mode answers "give me what follows this position" and stays correct
// while the collection mutates between fetches:
//
//	first, err := engine.Stream(ctx, &paging.Options{
//	    Sort:  paging.ParseSort("-score"),
//	    Limit: 20,
//	})
//	next, err := engine.Stream(ctx, &paging.Options{
//	    Sort:  paging.ParseSort("-score"),
//	    Limit: 20,
//	    After: *first.Next,
//	})
//
// Aggregate mode pages a caller-provided pipeline with a windowed execution
// and a parallel $count-shaped execution.
//
// # Cursor tokens
//
// Stream positions are opaque, URL-safe tokens packing the last document's
// primary sort value and unique id, the sort they were minted under, and a
// format version. Tokens are deterministic for identical inputs, rejected
// when corrupted, and rejected when minted under a different sort or version.
// A cursor is a pure position marker: it carries no reference to the filter
// set it was minted under.
//
// # Keyset invariants
//
// Seek pagination requires a totally ordered key. The engine normalizes every
// sort so the unique id field is last and restricts keyset sorts to one
// ranking field plus the id tie-breaker, with matching directions. Wider
// sorts are rejected with ErrRequiresIDSort rather than silently mis-paged.
package paging
