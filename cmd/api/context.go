package main

import (
	"context"
	"net/http"
)

// contextKey is a custom type for keys stored in the request context, so they
// can't collide with keys set by other packages.
type contextKey string

const requestIDContextKey = contextKey("requestID")

// contextSetRequestID returns a copy of r carrying the given request id.
func (app *application) contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}

// requestIDFromContext returns the request id, or an empty string when the
// requestID middleware did not run.
func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
