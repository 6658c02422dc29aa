// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Role identifies one of the two operator roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDelivery Role = "delivery"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDelivery
}

// UserContext contains authenticated user information.
type UserContext struct {
	UserID int64
	Email  string
	Role   Role
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or zero.
func GetUserID(ctx context.Context) int64 {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return 0
}
