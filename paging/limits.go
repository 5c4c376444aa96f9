package paging

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ncobase/docstore/ecode"
)

// ValidateLimit sanitizes a raw limit value against the configuration.
// Non-numeric, zero or negative input yields the default limit, decimals are
// floored, and values beyond the maximum are capped. Over-requesting is a
// caller mistake with an obvious safe correction, so it is never an error.
func ValidateLimit(raw any, cfg *Config) int {
	n, ok := toInt(raw)
	if !ok || n <= 0 {
		return cfg.DefaultLimit
	}
	if n > cfg.MaxLimit {
		return cfg.MaxLimit
	}
	return n
}

// ValidatePage sanitizes a raw page value against the configuration.
// Non-numeric, zero or negative input yields page 1. Values beyond the
// configured maximum return ErrExceedsMaxPage.
func ValidatePage(raw any, cfg *Config) (int, error) {
	n, ok := toInt(raw)
	if !ok || n <= 0 {
		return 1, nil
	}
	if cfg.MaxPage > 0 && n > cfg.MaxPage {
		return 0, fmt.Errorf("%w: %s, page %d > max %d", ErrExceedsMaxPage, ecode.LimitExceeded("page"), n, cfg.MaxPage)
	}
	return n, nil
}

// Skip returns the number of documents to skip for the given page.
func Skip(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}

// TotalPages returns the number of pages needed to cover total documents.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// DeepPage reports whether the page is beyond the deep pagination threshold.
// This is a non-fatal advisory attached to the result, not an error.
func DeepPage(page, threshold int) bool {
	return threshold > 0 && page > threshold
}

// toInt coerces a number or numeric string to int, flooring decimals.
func toInt(raw any) (int, bool) {
	switch n := raw.(type) {
	case nil:
		return 0, false
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(math.Floor(float64(n))), true
	case float64:
		return int(math.Floor(n)), true
	case string:
		if n == "" {
			return 0, false
		}
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int(math.Floor(f)), true
		}
		return 0, false
	default:
		return 0, false
	}
}
