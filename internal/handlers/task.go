package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/dto"
	"github.com/yukikurage/team-task-api/internal/middleware"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks, optionally filtered by teamId and userId
func (h *TaskHandler) ListTasks(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	type ListTasksQuery struct {
		TeamID *uint64 `form:"teamId" binding:"omitempty,min=1"`
		UserID *uint64 `form:"userId" binding:"omitempty,min=1"`
	}

	var query ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, pagination, err := h.taskService.ListTasks(c.Request.Context(), principal, services.ListTasksInput{
		TeamID:  query.TeamID,
		UserID:  query.UserID,
		Page:    params.Page,
		PerPage: params.PerPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, pagination))
}

// ShowTasks returns the tasks assigned to the user in the path
func (h *TaskHandler) ShowTasks(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, pagination, err := h.taskService.ShowTasksForUser(c.Request.Context(), principal, userID, params.Page, params.PerPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, pagination))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Status      models.TaskStatus   `json:"status" binding:"required,oneof=pending in_progress completed"`
		Priority    models.TaskPriority `json:"priority" binding:"required,oneof=low medium high"`
		AssignedTo  uint64              `json:"assignedTo" binding:"required"`
		TeamID      uint64              `json:"teamId" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), principal, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		TeamID:      req.TeamID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string             `json:"title"`
		Description *string             `json:"description"`
		Status      models.TaskStatus   `json:"status" binding:"required,oneof=pending in_progress completed"`
		Priority    models.TaskPriority `json:"priority" binding:"required,oneof=low medium high"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), principal, taskID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task together with its history
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), principal, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// TaskHistory returns the status history of a task
func (h *TaskHandler) TaskHistory(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.taskService.TaskHistory(c.Request.Context(), principal, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": dto.ToTaskHistoryDTOs(entries),
	})
}
