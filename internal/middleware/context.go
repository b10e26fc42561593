package middleware

import (
	"context"
	"html/template"

	"github.com/csemotors/csemotors-go/internal/model"
)

type contextKey string

const (
	identityKey  contextKey = "identity"
	navKey       contextKey = "nav"
	requestIDKey contextKey = "requestID"
)

// WithIdentity returns a copy of ctx carrying the logged-in identity.
func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the logged-in identity from the request context.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}

// NavFromContext returns the navigation fragment set by Navigation.
func NavFromContext(ctx context.Context) template.HTML {
	nav, _ := ctx.Value(navKey).(template.HTML)
	return nav
}

// RequestIDFromContext returns the id assigned by Logger.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
