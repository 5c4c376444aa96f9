package paging

import (
	"errors"
)

// Client input errors. All of them are detected before any store call is
// issued; store errors pass through untouched.
var (
	// ErrExceedsMaxPage is returned when the requested page is beyond the
	// configured maximum. Deep offset pagination is a resource-exhaustion
	// risk the caller must be told about, so it is never corrected silently.
	ErrExceedsMaxPage = errors.New("page exceeds maximum")

	// ErrSortRequired is returned by Stream when no sort is supplied. There
	// is no safe default ordering for seek pagination.
	ErrSortRequired = errors.New("sort required")

	// ErrRequiresIDSort is returned when a sort cannot be reduced to a
	// (ranking field, id tie-breaker) pair.
	ErrRequiresIDSort = errors.New("sort requires id tie-breaker")

	// ErrDirectionMismatch is returned when the id field direction differs
	// from the primary field direction.
	ErrDirectionMismatch = errors.New("sort direction mismatch")

	// ErrInvalidCursor is returned for any malformed, truncated or
	// non-conforming cursor token.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrCursorSortMismatch is returned when a cursor was minted under a
	// different ordering than the current request.
	ErrCursorSortMismatch = errors.New("cursor sort mismatch")

	// ErrCursorVersionMismatch is returned when a cursor was minted under a
	// different token format version.
	ErrCursorVersionMismatch = errors.New("cursor version mismatch")
)
