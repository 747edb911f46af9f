package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-api/internal/authz"
	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/models"
)

type stubTokens map[string]*authz.Principal

func (s stubTokens) ParseToken(_ context.Context, token string) (*authz.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, authz.ErrUnauthenticated
}

// stubUsers maps user IDs to their current role
type stubUsers map[uint64]models.UserRole

func (s stubUsers) LoadPrincipal(_ context.Context, id uint64) (*authz.Principal, error) {
	if role, ok := s[id]; ok {
		return &authz.Principal{ID: id, Role: role}, nil
	}
	return nil, authz.ErrUnauthenticated
}

func newTestRouter(tokens TokenParser, users PrincipalLoader, op authz.Operation) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("test-secret"))))

	r.GET("/login/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		session := sessions.Default(c)
		session.Set(constants.SessionKeyUserID, id)
		if err := session.Save(); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.GET("/protected", RequireAuth(tokens, users), RequireRole(op), func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		fromCtx, ok := authz.FromContext(c.Request.Context())
		if !ok || fromCtx.ID != principal.ID {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": principal.ID, "role": principal.Role})
	})
	return r
}

func TestRequireAuth_Bearer(t *testing.T) {
	tokens := stubTokens{
		"admin-token":  {ID: 1, Role: models.RoleAdmin},
		"member-token": {ID: 2, Role: models.RoleMember},
	}
	r := newTestRouter(tokens, stubUsers{}, authz.OpTaskList)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"admin", "Bearer admin-token", http.StatusOK},
		{"lowercase scheme", "bearer admin-token", http.StatusOK},
		{"member forbidden", "Bearer member-token", http.StatusForbidden},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "Basic admin-token", http.StatusUnauthorized},
		{"missing token", "Bearer ", http.StatusUnauthorized},
		{"no credentials", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

// loginCookies signs in as id through the test route
func loginCookies(t *testing.T, r *gin.Engine, id string) []*http.Cookie {
	t.Helper()
	login := httptest.NewRecorder()
	r.ServeHTTP(login, httptest.NewRequest(http.MethodGet, "/login/"+id, nil))
	require.Equal(t, http.StatusNoContent, login.Code)
	cookies := login.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func protectedWith(r *gin.Engine, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_Session(t *testing.T) {
	r := newTestRouter(stubTokens{}, stubUsers{7: models.RoleMember}, authz.OpTaskShow)

	w := protectedWith(r, loginCookies(t, r, "7"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"member"}`, w.Body.String())
}

func TestRequireAuth_SessionLoadsCurrentRole(t *testing.T) {
	users := stubUsers{7: models.RoleAdmin}
	r := newTestRouter(stubTokens{}, users, authz.OpTaskList)
	cookies := loginCookies(t, r, "7")

	assert.Equal(t, http.StatusOK, protectedWith(r, cookies).Code)

	users[7] = models.RoleMember
	assert.Equal(t, http.StatusForbidden, protectedWith(r, cookies).Code)

	delete(users, 7)
	assert.Equal(t, http.StatusUnauthorized, protectedWith(r, cookies).Code)
}

func TestRequireAuth_SessionWithoutUser(t *testing.T) {
	r := newTestRouter(stubTokens{}, stubUsers{7: models.RoleAdmin}, authz.OpTaskShow)

	assert.Equal(t, http.StatusUnauthorized, protectedWith(r, loginCookies(t, r, "0")).Code)
	assert.Equal(t, http.StatusUnauthorized, protectedWith(r, nil).Code)
}

func TestRequireRole_WithoutPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequireRole(authz.OpTaskShow), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
