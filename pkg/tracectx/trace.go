// Package tracectx carries the per-call trace id that engines attach to
// their debug log lines.
package tracectx

import "context"

type traceKey struct{}

// WithTraceID returns ctx tagged with id. An empty id leaves ctx untouched.
func WithTraceID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, traceKey{}, id)
}

// TraceIDFromContext returns the trace id on ctx, or "" when none is set.
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}

// Ensure keeps an existing trace id and otherwise tags ctx with newID().
func Ensure(ctx context.Context, newID func() string) context.Context {
	if TraceIDFromContext(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, newID())
}
