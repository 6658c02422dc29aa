// Package auth provides login and token issuance for the two operator roles.
package auth

import (
	"time"

	appctx "paneerflow/internal/core/context"
)

// User is an operator account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           int64       `db:"id" json:"id"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Role         appctx.Role `db:"role" json:"role"`
	CreatedAt    time.Time   `db:"created_at" json:"-"`
}

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
