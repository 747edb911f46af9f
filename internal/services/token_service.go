package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yukikurage/team-task-api/internal/authz"
	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/logger"
	"github.com/yukikurage/team-task-api/internal/models"
)

var ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthenticated)

type tokenClaims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed bearer tokens that carry a
// user's ID (subject) and role.
type TokenService struct {
	signingKey []byte
	lifetime   time.Duration
	now        func() time.Time
	clockSkew  time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if len(secret) < constants.MinJWTSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", constants.MinJWTSecretLen)
	}
	return &TokenService{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		now:        time.Now,
		clockSkew:  time.Minute,
	}, nil
}

// GenerateToken signs an access token for user.
func (s *TokenService) GenerateToken(ctx context.Context, user *models.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign access token", "error", err, "user_id", user.ID)
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a token and returns the principal it was issued for.
func (s *TokenService) ParseToken(ctx context.Context, tokenString string) (*authz.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{},
		func(t *jwt.Token) (any, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.FromContext(ctx).Debug("token validation failed: expired")
		} else {
			logger.FromContext(ctx).Debug("token validation failed", "error", err)
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || !claims.Role.IsValid() {
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, ErrInvalidToken
	}

	return &authz.Principal{ID: id, Role: claims.Role}, nil
}
