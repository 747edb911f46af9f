package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/utils"
)

// TaskHistoryDTO represents one status change of a task
type TaskHistoryDTO struct {
	ID        uint64            `json:"id"`
	TaskID    uint64            `json:"taskId"`
	ChangedBy uint64            `json:"changedBy"`
	OldStatus models.TaskStatus `json:"oldStatus"`
	NewStatus models.TaskStatus `json:"newStatus"`
	ChangedAt time.Time         `json:"changedAt"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	AssignedTo  uint64              `json:"assignedTo"`
	TeamID      uint64              `json:"teamId"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Team        *TeamSummaryDTO     `json:"team,omitempty"`
	Assignee    *UserSummaryDTO     `json:"assignee,omitempty"`
	History     []TaskHistoryDTO    `json:"history,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO        `json:"tasks"`
	Pagination utils.Pagination `json:"pagination"`
}

// Conversion functions

// ToTaskHistoryDTO converts a TaskHistory model to TaskHistoryDTO
func ToTaskHistoryDTO(entry models.TaskHistory) TaskHistoryDTO {
	return TaskHistoryDTO{
		ID:        entry.ID,
		TaskID:    entry.TaskID,
		ChangedBy: entry.ChangedBy,
		OldStatus: entry.OldStatus,
		NewStatus: entry.NewStatus,
		ChangedAt: entry.ChangedAt,
	}
}

// ToTaskHistoryDTOs converts ledger entries to DTOs
func ToTaskHistoryDTOs(entries []models.TaskHistory) []TaskHistoryDTO {
	items := make([]TaskHistoryDTO, len(entries))
	for i, entry := range entries {
		items[i] = ToTaskHistoryDTO(entry)
	}
	return items
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		AssignedTo:  task.AssignedTo,
		TeamID:      task.TeamID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include team if preloaded
	if task.Team.ID != 0 {
		dto.Team = &TeamSummaryDTO{ID: task.Team.ID, Name: task.Team.Name}
	}

	// Include assignee if preloaded
	if task.Assignee.ID != 0 {
		assignee := ToUserSummaryDTO(task.Assignee)
		dto.Assignee = &assignee
	}

	// Include history if preloaded
	if len(task.History) > 0 {
		dto.History = ToTaskHistoryDTOs(task.History)
	}

	return dto
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, pagination utils.Pagination) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return TaskListResponse{Tasks: items, Pagination: pagination}
}
