package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/dto"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/utils"
)

// TeamHandler serves team administration.
type TeamHandler struct {
	teamService   *services.TeamService
	memberService *services.TeamMemberService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService, memberService *services.TeamMemberService) *TeamHandler {
	return &TeamHandler{
		teamService:   teamService,
		memberService: memberService,
	}
}

// CreateTeam creates a new team.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	type CreateTeamRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), services.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// UpdateTeam renames a team and optionally replaces its description.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTeamRequest struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), teamID, services.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// ListTeams returns a page of teams filtered by name and description.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	teams, pagination, err := h.teamService.ListTeams(c.Request.Context(), services.ListTeamsInput{
		Name:        c.Query("name"),
		Description: c.Query("description"),
		Page:        params.Page,
		PerPage:     params.PerPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamListResponse(teams, pagination))
}

// ListMembers returns the memberships of a team.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToTeamMemberDTOs(members),
	})
}
