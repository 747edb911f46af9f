package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/utils"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TeamSummaryDTO is the compact team embedded in tasks
type TeamSummaryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TeamListResponse represents a paginated list of teams
type TeamListResponse struct {
	Teams      []TeamDTO        `json:"teams"`
	Pagination utils.Pagination `json:"pagination"`
}

// TeamMemberDTO represents a membership in API responses
type TeamMemberDTO struct {
	ID        uint64          `json:"id"`
	TeamID    uint64          `json:"teamId"`
	UserID    uint64          `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
	User      *UserSummaryDTO `json:"user,omitempty"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
}

// ToTeamListResponse converts a page of teams to TeamListResponse
func ToTeamListResponse(teams []models.Team, pagination utils.Pagination) TeamListResponse {
	items := make([]TeamDTO, len(teams))
	for i, team := range teams {
		items[i] = ToTeamDTO(team)
	}
	return TeamListResponse{Teams: items, Pagination: pagination}
}

// ToTeamMemberDTO converts a TeamMember model to TeamMemberDTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	dto := TeamMemberDTO{
		ID:        member.ID,
		TeamID:    member.TeamID,
		UserID:    member.UserID,
		CreatedAt: member.CreatedAt,
	}

	// Include user if preloaded
	if member.User.ID != 0 {
		user := ToUserSummaryDTO(member.User)
		dto.User = &user
	}

	return dto
}

// ToTeamMemberDTOs converts memberships to DTOs
func ToTeamMemberDTOs(members []models.TeamMember) []TeamMemberDTO {
	items := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		items[i] = ToTeamMemberDTO(member)
	}
	return items
}
