package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/testutils"
)

func TestTeamService(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	service := NewTeamService(repository.NewStore(db))

	_, err := service.CreateTeam(ctx, CreateTeamInput{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)

	backend, err := service.CreateTeam(ctx, CreateTeamInput{Name: "Backend", Description: "APIs and Storage"})
	require.NoError(t, err)
	_, err = service.CreateTeam(ctx, CreateTeamInput{Name: "Frontend", Description: "Web client"})
	require.NoError(t, err)
	_, err = service.CreateTeam(ctx, CreateTeamInput{Name: "Backoffice", Description: "Internal tools"})
	require.NoError(t, err)

	teams, page, err := service.ListTeams(ctx, ListTeamsInput{Name: "BACK"})
	require.NoError(t, err)
	assert.Len(t, teams, 2)
	assert.Equal(t, int64(2), page.TotalRecords)
	assert.Equal(t, 1, page.TotalPages)

	teams, _, err = service.ListTeams(ctx, ListTeamsInput{Description: "storage"})
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, backend.ID, teams[0].ID)

	teams, page, err = service.ListTeams(ctx, ListTeamsInput{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, teams, 1)
	assert.Equal(t, 2, page.TotalPages)

	updated, err := service.UpdateTeam(ctx, backend.ID, UpdateTeamInput{Name: "Core"})
	require.NoError(t, err)
	assert.Equal(t, "Core", updated.Name)
	assert.Equal(t, "APIs and Storage", updated.Description)

	desc := "Core services"
	updated, err = service.UpdateTeam(ctx, backend.ID, UpdateTeamInput{Name: "Core", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Core services", updated.Description)

	_, err = service.UpdateTeam(ctx, 999, UpdateTeamInput{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}
