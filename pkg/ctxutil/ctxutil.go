// Package ctxutil carries request-scoped identity values through contexts.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	principalIDKey ctxKey = "principal_id"
	requestIDKey   ctxKey = "request_id"
)

// WithPrincipalID stores the authenticated principal's id in the context.
func WithPrincipalID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, principalIDKey, id)
}

// PrincipalIDFromCtx extracts the principal id from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func PrincipalIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(principalIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request id in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request id from the context.
// Returns "" and false if the value is missing or the wrong type.
func RequestIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
