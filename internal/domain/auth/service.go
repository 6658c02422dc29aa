package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"paneerflow/internal/core/apperror"
	"paneerflow/pkg/logger"
)

// Service provides authentication logic.
type Service struct {
	userRepo   UserRepository
	jwtService *JWTService
}

// NewService creates a new auth service.
func NewService(userRepo UserRepository, jwtService *JWTService) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// LoginResult carries the authenticated user and their access token.
type LoginResult struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials against the stored bcrypt hash and issues an
// access token. Lookup failure and password mismatch are indistinguishable
// to the caller.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, apperror.NewUnauthorized("Invalid credentials")
	}

	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized("Invalid credentials")
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"role", string(user.Role),
	)

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// HashPassword produces a bcrypt hash for seeding and account creation.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
