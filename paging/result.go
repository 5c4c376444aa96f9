package paging

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Method discriminates the three result shapes.
type Method string

const (
	MethodOffset    Method = "offset"
	MethodKeyset    Method = "keyset"
	MethodAggregate Method = "aggregate"
)

// Result is the discriminated union of the three page shapes.
type Result interface {
	Kind() Method
}

// OffsetResult is the offset-mode page shape.
type OffsetResult struct {
	Method  Method   `json:"method"`
	Docs    []bson.M `json:"docs"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Total   int64    `json:"total"`
	Pages   int      `json:"pages"`
	HasNext bool     `json:"hasNext"`
	HasPrev bool     `json:"hasPrev"`
	Warning string   `json:"warning,omitempty"`
}

// Kind returns the result method tag.
func (r *OffsetResult) Kind() Method { return MethodOffset }

// KeysetResult is the keyset-mode page shape. It deliberately carries no
// total or page count: computing a total for a live, mutating keyset stream
// is not guaranteed.
type KeysetResult struct {
	Method  Method   `json:"method"`
	Docs    []bson.M `json:"docs"`
	Limit   int      `json:"limit"`
	HasMore bool     `json:"hasMore"`
	Next    *string  `json:"next"`
}

// Kind returns the result method tag.
func (r *KeysetResult) Kind() Method { return MethodKeyset }

// AggregateResult shares the offset shape but is produced by a pipeline run.
type AggregateResult struct {
	Method  Method   `json:"method"`
	Docs    []bson.M `json:"docs"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Total   int64    `json:"total"`
	Pages   int      `json:"pages"`
	HasNext bool     `json:"hasNext"`
	HasPrev bool     `json:"hasPrev"`
	Warning string   `json:"warning,omitempty"`
}

// Kind returns the result method tag.
func (r *AggregateResult) Kind() Method { return MethodAggregate }
