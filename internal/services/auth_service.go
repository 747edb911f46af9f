package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)

// AuthService handles authentication related business logic.
type AuthService struct {
	store  repository.Store
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.Store, tokens *TokenService) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user with a signed access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	user, err := s.store.Users().FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
