package middleware

import (
	"context"
)

type ctxKey string

const (
	ctxKeyHX      ctxKey = "hx"
	ctxKeySession ctxKey = "session"
	ctxKeyNav     ctxKey = "nav"
)

// WithHX stores the htmx request details.
func WithHX(ctx context.Context, hx HXRequest) context.Context {
	return context.WithValue(ctx, ctxKeyHX, hx)
}

// HX returns the htmx request details; the zero value for plain requests.
func HX(ctx context.Context) HXRequest {
	v, _ := ctx.Value(ctxKeyHX).(HXRequest)
	return v
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(ctx context.Context) bool { return HX(ctx).Request }
