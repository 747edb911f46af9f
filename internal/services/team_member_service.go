package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/team-task-api/internal/logger"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"gorm.io/gorm"
)

// TeamMemberService manages which users belong to which teams.
type TeamMemberService struct {
	store repository.Store
}

// NewTeamMemberService creates a new TeamMemberService.
func NewTeamMemberService(store repository.Store) *TeamMemberService {
	return &TeamMemberService{store: store}
}

// AddMember adds a user to a team. Both must exist and the pair must be new.
func (s *TeamMemberService) AddMember(ctx context.Context, teamID, userID uint64) (*models.TeamMember, error) {
	if _, err := s.store.Users().FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Member")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.store.Teams().FindByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Team")
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	exists, err := s.IsMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyTeamMember
	}

	member := &models.TeamMember{TeamID: teamID, UserID: userID}
	if err := s.store.TeamMembers().Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyTeamMember
		}
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	logger.FromContext(ctx).Info("team member added",
		"membership_id", member.ID,
		"team_id", teamID,
		"user_id", userID)
	return member, nil
}

// RemoveMember deletes a membership by its ID.
func (s *TeamMemberService) RemoveMember(ctx context.Context, membershipID uint64) error {
	member, err := s.store.TeamMembers().FindByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Team member")
		}
		return fmt.Errorf("failed to find team member: %w", err)
	}

	if err := s.store.TeamMembers().Delete(ctx, member.ID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	logger.FromContext(ctx).Info("team member removed",
		"membership_id", member.ID,
		"team_id", member.TeamID,
		"user_id", member.UserID)
	return nil
}

// IsMember reports whether the user belongs to the team.
func (s *TeamMemberService) IsMember(ctx context.Context, teamID, userID uint64) (bool, error) {
	ok, err := s.store.TeamMembers().Exists(ctx, teamID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to verify team membership: %w", err)
	}
	return ok, nil
}

// ListMembers returns the memberships of an existing team.
func (s *TeamMemberService) ListMembers(ctx context.Context, teamID uint64) ([]models.TeamMember, error) {
	if _, err := s.store.Teams().FindByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Team")
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.store.TeamMembers().ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}
