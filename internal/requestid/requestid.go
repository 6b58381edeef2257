// Package requestid carries a per-request id through context so that
// HTTP middleware and downstream services agree on the key.
package requestid

import "context"

type ctxKey struct{}

// NewContext returns a context carrying the given request id.
func NewContext(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, rid)
}

// FromContext extracts the request id, or "" when none is set.
func FromContext(ctx context.Context) string {
	if rid, ok := ctx.Value(ctxKey{}).(string); ok {
		return rid
	}
	return ""
}
