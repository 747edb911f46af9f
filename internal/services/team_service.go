package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/utils"
	"gorm.io/gorm"
)

// TeamService provides business logic for team operations.
type TeamService struct {
	store repository.Store
}

// NewTeamService creates a new TeamService.
func NewTeamService(store repository.Store) *TeamService {
	return &TeamService{store: store}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	Name        string
	Description string
}

// UpdateTeamInput represents parameters to update a team. A nil or empty
// description keeps the current one.
type UpdateTeamInput struct {
	Name        string
	Description *string
}

// ListTeamsInput represents filters for listing teams.
type ListTeamsInput struct {
	Name        string
	Description string
	Page        int
	PerPage     int
}

// CreateTeam creates a new team.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalid("name", "is required")
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.store.Teams().Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// UpdateTeam updates a team's name and, when given, its description.
func (s *TeamService) UpdateTeam(ctx context.Context, teamID uint64, input UpdateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalid("name", "is required")
	}

	team, err := s.store.Teams().FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Team")
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	team.Name = input.Name
	if input.Description != nil && *input.Description != "" {
		team.Description = *input.Description
	}

	if err := s.store.Teams().Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// ListTeams returns a page of teams filtered by name and description.
func (s *TeamService) ListTeams(ctx context.Context, input ListTeamsInput) ([]models.Team, utils.Pagination, error) {
	params := utils.NormalizePagination(input.Page, input.PerPage)
	teams, total, err := s.store.Teams().List(ctx, repository.TeamFilter{
		Name:        input.Name,
		Description: input.Description,
		Pagination:  params,
	})
	if err != nil {
		return nil, utils.Pagination{}, fmt.Errorf("failed to list teams: %w", err)
	}

	return teams, utils.NewPagination(params, total), nil
}
