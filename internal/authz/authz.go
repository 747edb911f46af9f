// Package authz decides whether an authenticated principal may perform an
// operation. Decisions are made in two steps: a coarse role gate declared
// per operation, then an ownership predicate for task-level access. Both are
// pure functions of their inputs and never touch storage.
package authz

import (
	"context"
	"errors"

	"github.com/yukikurage/team-task-api/internal/models"
)

var (
	// ErrUnauthenticated is returned when no principal could be resolved.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnauthorized is returned when a principal fails a role or ownership check.
	ErrUnauthorized = errors.New("unauthorized")
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID   uint64
	Role models.UserRole
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// RoleSet is the set of roles allowed to perform an operation.
type RoleSet []models.UserRole

// Contains reports whether role is part of the set.
func (s RoleSet) Contains(role models.UserRole) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

var (
	AdminOnly = RoleSet{models.RoleAdmin}
	AnyRole   = RoleSet{models.RoleMember, models.RoleAdmin}
)

// Authorize checks that p holds one of the allowed roles.
func Authorize(p *Principal, allowed RoleSet) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if !allowed.Contains(p.Role) {
		return ErrUnauthorized
	}
	return nil
}

// AuthorizeOwner checks that p may act on a resource owned by ownerID.
// Admins may act on anything; members only on their own resources.
func AuthorizeOwner(p *Principal, ownerID uint64) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if p.IsAdmin() {
		return nil
	}
	if p.Role != models.RoleMember || p.ID != ownerID {
		return ErrUnauthorized
	}
	return nil
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored in ctx, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
