package auth

import (
	"context"
)

// UserRepository defines persistence operations for operator accounts.
type UserRepository interface {
	// GetByEmail returns the user with the given email or a NOT_FOUND error.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID returns the user with the given id or a NOT_FOUND error.
	GetByID(ctx context.Context, id int64) (*User, error)
}
