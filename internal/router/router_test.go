package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/testutils"
)

func newTestServer(t *testing.T) (*gin.Engine, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutils.NewTestDB(t)
	tokens, err := services.NewTokenService("router-test-secret-with-32-characters", time.Hour)
	require.NoError(t, err)

	r := New(Options{
		Store:        repository.NewStore(db),
		Tokens:       tokens,
		SessionStore: cookie.NewStore([]byte("router-test-session")),
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		AdminKey:     "bootstrap",
	})
	return r, tokens
}

func do(t *testing.T, r http.Handler, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRoleGates(t *testing.T) {
	r, tokens := newTestServer(t)
	ctx := context.Background()

	memberToken, err := tokens.GenerateToken(ctx, &models.User{ID: 2, Role: models.RoleMember})
	require.NoError(t, err)

	adminOnly := []struct{ method, url string }{
		{http.MethodGet, "/api/users"},
		{http.MethodPatch, "/api/users/1"},
		{http.MethodPost, "/api/teams"},
		{http.MethodPut, "/api/teams/1"},
		{http.MethodGet, "/api/teams"},
		{http.MethodGet, "/api/teams/1/members"},
		{http.MethodPost, "/api/team-members"},
		{http.MethodDelete, "/api/team-members/1"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodDelete, "/api/tasks/1"},
	}
	for _, route := range adminOnly {
		t.Run(route.method+" "+route.url, func(t *testing.T) {
			w := do(t, r, route.method, route.url, memberToken, map[string]any{})
			assert.Equal(t, http.StatusForbidden, w.Code)

			w = do(t, r, route.method, route.url, "", map[string]any{})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

// The full flow: bootstrap an admin, build a team, hand out a task and
// walk it to completion.
func TestTaskLifecycle(t *testing.T) {
	r, _ := newTestServer(t)

	signup := func(name, email, query string) uint64 {
		w := do(t, r, http.MethodPost, "/api/users"+query, "", map[string]any{
			"name": name, "email": email, "password": "supersecret", "role": "admin",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var user struct {
			ID uint64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		return user.ID
	}
	login := func(email string) string {
		w := do(t, r, http.MethodPost, "/api/sessions", "", map[string]any{"email": email, "password": "supersecret"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var session struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
		return session.Token
	}

	signup("Root", "root@example.com", "?key=bootstrap")
	aliceID := signup("Alice", "alice@example.com", "")
	admin := login("root@example.com")
	alice := login("alice@example.com")

	w := do(t, r, http.MethodPost, "/api/teams", admin, map[string]any{"name": "Platform"})
	require.Equal(t, http.StatusCreated, w.Code)
	var team struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &team))

	w = do(t, r, http.MethodPost, "/api/team-members", admin, map[string]any{"teamId": team.ID, "userId": aliceID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/api/tasks", alice, map[string]any{
		"title": "Rotate keys", "status": "pending", "priority": "high",
		"assignedTo": aliceID, "teamId": team.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	taskURL := fmt.Sprintf("/api/tasks/%d", task.ID)
	for _, status := range []string{"in_progress", "completed"} {
		w = do(t, r, http.MethodPatch, taskURL, alice, map[string]any{"status": status, "priority": "high"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPatch, taskURL, admin, map[string]any{"status": "pending", "priority": "low"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, taskURL+"/history", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		History []struct {
			OldStatus string `json:"oldStatus"`
			NewStatus string `json:"newStatus"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.History, 3)
	assert.Equal(t, "pending", history.History[0].NewStatus)
	assert.Equal(t, "in_progress", history.History[1].NewStatus)
	assert.Equal(t, "in_progress", history.History[2].OldStatus)
	assert.Equal(t, "completed", history.History[2].NewStatus)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/tasks/%d", aliceID), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalRecords":1`)
}
