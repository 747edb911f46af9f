package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/dto"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/utils"
)

// UserHandler serves user registration and administration.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers a new user. The requested role is only honoured
// together with the admin key in the "key" query parameter.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Name     string          `json:"name" binding:"required"`
		Email    string          `json:"email" binding:"required"`
		Password string          `json:"password" binding:"required"`
		Role     models.UserRole `json:"role" binding:"omitempty,oneof=admin member"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		AdminKey: c.Query("key"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update to a user.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Name     *string          `json:"name"`
		Email    *string          `json:"email"`
		Password *string          `json:"password"`
		Role     *models.UserRole `json:"role" binding:"omitempty,oneof=admin member"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, services.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListUsers returns a page of users filtered by userId and role.
func (h *UserHandler) ListUsers(c *gin.Context) {
	type ListUsersQuery struct {
		UserID *uint64          `form:"userId" binding:"omitempty,min=1"`
		Role   *models.UserRole `form:"role" binding:"omitempty,oneof=admin member"`
	}

	var query ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	users, pagination, err := h.userService.ListUsers(c.Request.Context(), services.ListUsersInput{
		UserID:  query.UserID,
		Role:    query.Role,
		Page:    params.Page,
		PerPage: params.PerPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, pagination))
}
