package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/authz"
	"github.com/yukikurage/team-task-api/internal/constants"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/logger"
)

// TokenParser verifies a bearer token and returns its principal.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*authz.Principal, error)
}

// PrincipalLoader returns the current principal for a stored user ID.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID uint64) (*authz.Principal, error)
}

// RequireAuth resolves the principal from a bearer token, falling back to
// the session, and rejects the request when neither identifies a user.
// Sessions hold only the user ID; the role is loaded on every request.
func RequireAuth(tokens TokenParser, users PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := resolvePrincipal(c, tokens, users)
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug("authentication failed", "error", err)
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyPrincipal, principal)
		c.Request = c.Request.WithContext(authz.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// RequireRole rejects principals whose role is not declared for op.
func RequireRole(op authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := GetPrincipal(c)
		if err := authz.Check(principal, op); err != nil {
			if errors.Is(err, authz.ErrUnauthenticated) {
				apierrors.Unauthorized(c, "")
				return
			}
			apierrors.Forbidden(c, "")
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from context
func GetPrincipal(c *gin.Context) (*authz.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*authz.Principal)
	return principal, ok && principal != nil
}

func resolvePrincipal(c *gin.Context, tokens TokenParser, users PrincipalLoader) (*authz.Principal, error) {
	header := c.GetHeader("Authorization")
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return nil, authz.ErrUnauthenticated
		}
		return tokens.ParseToken(c.Request.Context(), strings.TrimSpace(token))
	}

	return sessionPrincipal(c, users)
}

func sessionPrincipal(c *gin.Context, users PrincipalLoader) (*authz.Principal, error) {
	session := sessions.Default(c)

	var id uint64
	switch v := session.Get(constants.SessionKeyUserID).(type) {
	case uint64:
		id = v
	case uint:
		id = uint64(v)
	case int:
		if v > 0 {
			id = uint64(v)
		}
	}
	if id == 0 {
		return nil, authz.ErrUnauthenticated
	}
	return users.LoadPrincipal(c.Request.Context(), id)
}
