// Package domain holds the storefront's core types: catalog products,
// visitor state (cart, account, orders), error codes and context helpers.
package domain

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is unexported so no other package can collide with these keys.
type contextKey int

const (
	sessionContextKey contextKey = iota
	userContextKey
)

// User is the signed-in account as stored in context. It never carries the
// password hash.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// --- Session Context Helpers ---

// NewContextWithSession returns a context carrying the visitor's session ID.
func NewContextWithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionContextKey, sessionID)
}

// SessionFromContext returns the visitor's session ID, or "" if none.
func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionContextKey).(string)
	return id
}

// MustSession returns the session ID, panicking if the session middleware
// did not run. Recovery middleware turns the panic into a 500.
func MustSession(ctx context.Context) string {
	id := SessionFromContext(ctx)
	if id == "" {
		panic("session required in context but not found")
	}
	return id
}

// --- User Context Helpers ---

// NewContextWithUser returns a context carrying the signed-in user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the signed-in user, or nil.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}

// UserIDFromContext returns the signed-in user's ID, or uuid.Nil.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if user := UserFromContext(ctx); user != nil {
		return user.ID
	}
	return uuid.Nil
}

// IsAuthenticated reports whether a user is signed in.
func IsAuthenticated(ctx context.Context) bool {
	return UserFromContext(ctx) != nil
}
