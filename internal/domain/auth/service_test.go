package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paneerflow/internal/core/apperror"
	appctx "paneerflow/internal/core/context"
)

type fakeUserRepo struct {
	users map[string]*User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperror.NewNotFound("user", id)
}

func newTestService(t *testing.T) (*Service, *User) {
	t.Helper()

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	user := &User{
		ID:           1,
		Email:        "admin@paneerflow.local",
		PasswordHash: hash,
		Role:         appctx.RoleAdmin,
	}
	repo := &fakeUserRepo{users: map[string]*User{user.Email: user}}
	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))

	return NewService(repo, jwtService), user
}

func TestLoginSuccess(t *testing.T) {
	svc, user := newTestService(t)

	result, err := svc.Login(context.Background(), Credentials{
		Email:    user.Email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, user := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		creds Credentials
	}{
		{"unknown email", Credentials{Email: "nobody@paneerflow.local", Password: "s3cret-pass"}},
		{"wrong password", Credentials{Email: user.Email, Password: "guess"}},
		{"empty password", Credentials{Email: user.Email}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.creds)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
			assert.Equal(t, "Invalid credentials", appErr.Message)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc, user := newTestService(t)

	result, err := svc.Login(context.Background(), Credentials{
		Email:    user.Email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))
	userCtx, err := jwtService.ValidateToken(result.Token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, userCtx.UserID)
	assert.Equal(t, user.Email, userCtx.Email)
	assert.Equal(t, appctx.RoleAdmin, userCtx.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(&User{ID: 1, Email: "x@y", Role: appctx.RoleDelivery})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken(&User{ID: 1, Email: "x@y", Role: appctx.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
