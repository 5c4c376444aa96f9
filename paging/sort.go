package paging

import (
	"fmt"
	"strings"

	"github.com/ncobase/docstore/ecode"
	"go.mongodb.org/mongo-driver/bson"
)

// Direction represents a sort direction, matching MongoDB sort documents.
type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

// SortKey is a single (field, direction) pair.
type SortKey struct {
	Field string    `json:"f"`
	Dir   Direction `json:"d"`
}

// SortSpec is an order-significant sort specification.
type SortSpec []SortKey

// ParseSort parses the shorthand sort string form, e.g. "-score,name".
// A leading '-' marks a descending field.
func ParseSort(s string) SortSpec {
	var spec SortSpec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			spec = append(spec, SortKey{Field: part[1:], Dir: Desc})
		} else {
			spec = append(spec, SortKey{Field: strings.TrimPrefix(part, "+"), Dir: Asc})
		}
	}
	return spec
}

// Normalize reorders the spec so the id field is last, preserving the
// relative order of all other fields. Encode, decode and compare operations
// use the normalized form so they never depend on caller-supplied key order.
func (s SortSpec) Normalize(idField string) SortSpec {
	out := make(SortSpec, 0, len(s))
	var id *SortKey
	for i := range s {
		if s[i].Field == idField {
			k := s[i]
			id = &k
			continue
		}
		out = append(out, s[i])
	}
	if id != nil {
		out = append(out, *id)
	}
	return out
}

// ValidateKeyset enforces the invariants required for seek pagination and
// returns the effective (primary, id) compound sort:
//
//   - a single non-id field gets the id appended with the same direction;
//   - a (field, id) pair must have matching directions;
//   - anything wider cannot be keyset-paged and must be reduced by the caller.
func (s SortSpec) ValidateKeyset(idField string) (SortSpec, error) {
	switch len(s) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrSortRequired, ecode.FieldIsRequired("sort"))
	case 1:
		if s[0].Field == idField {
			return SortSpec{s[0]}, nil
		}
		return SortSpec{s[0], {Field: idField, Dir: s[0].Dir}}, nil
	case 2:
		var primary, id *SortKey
		for i := range s {
			if s[i].Field == idField {
				id = &s[i]
			} else {
				primary = &s[i]
			}
		}
		if id == nil {
			return nil, fmt.Errorf("%w: multi-field sort must end with %s", ErrRequiresIDSort, idField)
		}
		if primary == nil {
			return SortSpec{*id}, nil
		}
		if primary.Dir != id.Dir {
			return nil, fmt.Errorf("%w: %s direction must match %s", ErrDirectionMismatch, idField, primary.Field)
		}
		return SortSpec{*primary, *id}, nil
	default:
		return nil, fmt.Errorf("%w: at most one ranking field plus %s", ErrRequiresIDSort, idField)
	}
}

// Invert flips every field's direction.
func (s SortSpec) Invert() SortSpec {
	out := make(SortSpec, len(s))
	for i, k := range s {
		out[i] = SortKey{Field: k.Field, Dir: -k.Dir}
	}
	return out
}

// Primary returns the first non-id field, or the id field itself when the
// sort is id-only.
func (s SortSpec) Primary(idField string) string {
	for _, k := range s {
		if k.Field != idField {
			return k.Field
		}
	}
	if len(s) > 0 {
		return s[0].Field
	}
	return idField
}

// Equal reports structural equality of field names and directions, in order.
func (s SortSpec) Equal(other SortSpec) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Document returns the driver-level sort document.
func (s SortSpec) Document() bson.D {
	d := make(bson.D, 0, len(s))
	for _, k := range s {
		d = append(d, bson.E{Key: k.Field, Value: int(k.Dir)})
	}
	return d
}

// String renders the shorthand form, e.g. "-score,_id".
func (s SortSpec) String() string {
	parts := make([]string, 0, len(s))
	for _, k := range s {
		if k.Dir == Desc {
			parts = append(parts, "-"+k.Field)
		} else {
			parts = append(parts, k.Field)
		}
	}
	return strings.Join(parts, ",")
}
