package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/team-task-api/internal/models"
)

func TestAuthorize(t *testing.T) {
	admin := &Principal{ID: 1, Role: models.RoleAdmin}
	member := &Principal{ID: 2, Role: models.RoleMember}
	unknown := &Principal{ID: 3, Role: models.UserRole("guest")}

	tests := []struct {
		name      string
		principal *Principal
		allowed   RoleSet
		want      error
	}{
		{"admin on admin-only", admin, AdminOnly, nil},
		{"member on admin-only", member, AdminOnly, ErrUnauthorized},
		{"member on any role", member, AnyRole, nil},
		{"admin on any role", admin, AnyRole, nil},
		{"unknown role", unknown, AnyRole, ErrUnauthorized},
		{"no principal", nil, AnyRole, ErrUnauthenticated},
		{"empty role set", admin, nil, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Authorize(tt.principal, tt.allowed), tt.want)
		})
	}
}

func TestAuthorizeOwner(t *testing.T) {
	admin := &Principal{ID: 1, Role: models.RoleAdmin}
	member := &Principal{ID: 2, Role: models.RoleMember}

	assert.NoError(t, AuthorizeOwner(admin, 99))
	assert.NoError(t, AuthorizeOwner(member, 2))
	assert.ErrorIs(t, AuthorizeOwner(member, 3), ErrUnauthorized)
	assert.ErrorIs(t, AuthorizeOwner(nil, 2), ErrUnauthenticated)
}

func TestCheck(t *testing.T) {
	member := &Principal{ID: 2, Role: models.RoleMember}

	assert.NoError(t, Check(member, OpTaskCreate))
	assert.NoError(t, Check(member, OpTaskShow))
	assert.ErrorIs(t, Check(member, OpTaskList), ErrUnauthorized)
	assert.ErrorIs(t, Check(member, OpTaskDelete), ErrUnauthorized)
	assert.ErrorIs(t, Check(member, OpTeamMemberAdd), ErrUnauthorized)
	assert.ErrorIs(t, Check(&Principal{ID: 1, Role: models.RoleAdmin}, Operation("nope")), ErrUnauthorized)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	p := &Principal{ID: 7, Role: models.RoleMember}
	got, ok := FromContext(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Equal(t, p, got)
}
