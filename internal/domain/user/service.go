package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inneranimal/inneranimal-api/internal/pkg/jwt"
	"github.com/inneranimal/inneranimal-api/internal/pkg/password"
)

// Service handles account business logic
type Service struct {
	repo Repository
	jwt  *jwt.Service
}

// NewService creates user service
func NewService(repo Repository, jwtService *jwt.Service) *Service {
	return &Service{repo: repo, jwt: jwtService}
}

// TokenPair carries issued session tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates an account and issues a token pair. Display name
// defaults to the email local part.
func (s *Service) Register(ctx context.Context, email, plainPassword, displayName string) (*User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, nil, ErrEmailTaken
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if displayName == "" {
		displayName = email
		if idx := strings.Index(email, "@"); idx > 0 {
			displayName = email[:idx]
		}
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	access, err := s.jwt.GenerateAccessToken(u.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return u, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
