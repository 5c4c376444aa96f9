// Package ctxutil carries request-scoped values through context.Context.
package ctxutil

import (
	"context"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type contextKey string

// TraceIDKey is the context key under which the trace id is stored.
const TraceIDKey contextKey = "trace_id"

const traceIDSize = 16

// GetTraceID gets the trace id from context.Context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets the trace id to context.Context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := gonanoid.Must(traceIDSize)
	return SetTraceID(ctx, traceID), traceID
}
