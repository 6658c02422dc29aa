// Package auth_repo provides the PostgreSQL implementation of operator
// account lookup.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"paneerflow/internal/core/apperror"
	"paneerflow/internal/domain/auth"
	"paneerflow/internal/infrastructure/storage/postgres"
)

const usersTable = "users"

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

var userColumns = []string{"id", "email", "password_hash", "role", "created_at"}

// GetByEmail returns the account with the given email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, email)
}

// GetByID returns the account with the given id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

func (r *UserRepo) getOne(ctx context.Context, cond squirrel.Eq, key any) (*auth.User, error) {
	q := r.builder.Select(userColumns...).From(usersTable).Where(cond)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var user auth.User
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

var _ auth.UserRepository = (*UserRepo)(nil)
