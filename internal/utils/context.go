// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, token hashing,
// password hashing, HTTP response writing, HTTP client initialization and
// session token signing and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-dashboard/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SessionCtxKey is the key under which the route guard stores the
// refreshed session claims.
var SessionCtxKey = contextKey("session")

// WithSession returns a copy of ctx carrying the session claims.
func WithSession(ctx context.Context, claims models.SessionClaims) context.Context {
	return context.WithValue(ctx, SessionCtxKey, claims)
}

// GetSessionFromContext retrieves the session claims stored by the route
// guard. ok is false when the request is anonymous.
func GetSessionFromContext(ctx context.Context) (models.SessionClaims, bool) {
	claims, ok := ctx.Value(SessionCtxKey).(models.SessionClaims)
	return claims, ok
}

// GetUserIDFromContext retrieves the id of the signed-in user.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := GetSessionFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
