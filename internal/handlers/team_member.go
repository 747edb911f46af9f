package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/dto"
	"github.com/yukikurage/team-task-api/internal/services"
)

// TeamMemberHandler adds users to teams and removes them.
type TeamMemberHandler struct {
	memberService *services.TeamMemberService
}

// NewTeamMemberHandler creates a new TeamMemberHandler.
func NewTeamMemberHandler(memberService *services.TeamMemberService) *TeamMemberHandler {
	return &TeamMemberHandler{
		memberService: memberService,
	}
}

// AddMember adds a user to a team.
func (h *TeamMemberHandler) AddMember(c *gin.Context) {
	type AddMemberRequest struct {
		TeamID uint64 `json:"teamId" binding:"required"`
		UserID uint64 `json:"userId" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.memberService.AddMember(c.Request.Context(), req.TeamID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamMemberDTO(*member))
}

// RemoveMember deletes a membership.
func (h *TeamMemberHandler) RemoveMember(c *gin.Context) {
	membershipID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.RemoveMember(c.Request.Context(), membershipID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}
