package graphql

import (
	"context"

	"forum.GO/hooks"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeyRequestContext contextKey = "requestContext"

// WithRequestContext attaches the hook-built request context mapping.
func WithRequestContext(ctx context.Context, rc hooks.RequestContext) context.Context {
	return context.WithValue(ctx, CtxKeyRequestContext, rc)
}

// RequestContextFrom returns the request context mapping for the current
// request. Nil when the request bypassed the GraphQL middleware (tests).
func RequestContextFrom(ctx context.Context) hooks.RequestContext {
	if v := ctx.Value(CtxKeyRequestContext); v != nil {
		if rc, ok := v.(hooks.RequestContext); ok {
			return rc
		}
	}
	return nil
}
