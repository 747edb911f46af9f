package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/team-task-api/internal/authz"
	"github.com/yukikurage/team-task-api/internal/logger"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/utils"
	"gorm.io/gorm"
)

// TaskService owns the task lifecycle: ownership rules, the completed
// terminal state and the status history written alongside every change.
type TaskService struct {
	store repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{store: store}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssignedTo  uint64
	TeamID      uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields keep
// their current value; Status and Priority are always required.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	TeamID  *uint64
	UserID  *uint64
	Page    int
	PerPage int
}

// CreateTask creates a task and its initial history entry in one transaction.
func (s *TaskService) CreateTask(ctx context.Context, p *authz.Principal, input CreateTaskInput) (*models.Task, error) {
	if err := authz.Check(p, authz.OpTaskCreate); err != nil {
		return nil, err
	}
	if err := validateTaskFields(input.Status, input.Priority); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, invalid("title", "is required")
	}
	if err := authz.AuthorizeOwner(p, input.AssignedTo); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		AssignedTo:  input.AssignedTo,
		TeamID:      input.TeamID,
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		isMember, err := tx.TeamMembers().Exists(ctx, input.TeamID, input.AssignedTo)
		if err != nil {
			return fmt.Errorf("failed to verify team membership: %w", err)
		}
		if !isMember {
			return notFound("member or team")
		}

		if err := tx.Tasks().Create(ctx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		entry := &models.TaskHistory{
			TaskID:    task.ID,
			ChangedBy: p.ID,
			OldStatus: task.Status,
			NewStatus: task.Status,
		}
		if err := tx.History().Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to record task history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("task created",
		"task_id", task.ID,
		"team_id", task.TeamID,
		"assigned_to", task.AssignedTo,
		"changed_by", p.ID)
	return task, nil
}

// ListTasks returns a page of tasks matching the optional team and assignee filters.
func (s *TaskService) ListTasks(ctx context.Context, p *authz.Principal, input ListTasksInput) ([]models.Task, utils.Pagination, error) {
	if err := authz.Check(p, authz.OpTaskList); err != nil {
		return nil, utils.Pagination{}, err
	}

	return s.list(ctx, repository.TaskFilter{
		TeamID:     input.TeamID,
		AssignedTo: input.UserID,
		Pagination: utils.NormalizePagination(input.Page, input.PerPage),
	})
}

// ShowTasksForUser returns a page of tasks assigned to targetUserID.
// Members may only look at their own tasks.
func (s *TaskService) ShowTasksForUser(ctx context.Context, p *authz.Principal, targetUserID uint64, page, perPage int) ([]models.Task, utils.Pagination, error) {
	if err := authz.Check(p, authz.OpTaskShow); err != nil {
		return nil, utils.Pagination{}, err
	}
	if err := authz.AuthorizeOwner(p, targetUserID); err != nil {
		return nil, utils.Pagination{}, err
	}

	return s.list(ctx, repository.TaskFilter{
		AssignedTo: &targetUserID,
		Pagination: utils.NormalizePagination(page, perPage),
	})
}

func (s *TaskService) list(ctx context.Context, filter repository.TaskFilter) ([]models.Task, utils.Pagination, error) {
	tasks, total, err := s.store.Tasks().List(ctx, filter)
	if err != nil {
		return nil, utils.Pagination{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, utils.NewPagination(filter.Pagination, total), nil
}

// UpdateTask applies input to a task that is not yet completed. A history
// entry is appended only when the status actually changes.
func (s *TaskService) UpdateTask(ctx context.Context, p *authz.Principal, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if err := authz.Check(p, authz.OpTaskUpdate); err != nil {
		return nil, err
	}

	var (
		updated   *models.Task
		oldStatus models.TaskStatus
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		task, err := tx.Tasks().FindByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Task")
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		if err := authz.AuthorizeOwner(p, task.AssignedTo); err != nil {
			return err
		}
		if task.Status.IsTerminal() {
			return ErrTaskCompleted
		}
		if err := validateTaskFields(input.Status, input.Priority); err != nil {
			return err
		}

		oldStatus = task.Status
		if input.Title != nil {
			if strings.TrimSpace(*input.Title) == "" {
				return invalid("title", "cannot be empty")
			}
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		task.Status = input.Status
		task.Priority = input.Priority

		if err := tx.Tasks().Update(ctx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		if task.Status != oldStatus {
			entry := &models.TaskHistory{
				TaskID:    task.ID,
				ChangedBy: p.ID,
				OldStatus: oldStatus,
				NewStatus: task.Status,
			}
			if err := tx.History().Append(ctx, entry); err != nil {
				return fmt.Errorf("failed to record task history: %w", err)
			}
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status != oldStatus {
		logger.FromContext(ctx).Info("task status changed",
			"task_id", updated.ID,
			"old_status", oldStatus,
			"new_status", updated.Status,
			"changed_by", p.ID)
	}
	return updated, nil
}

// DeleteTask permanently removes a task and its history.
func (s *TaskService) DeleteTask(ctx context.Context, p *authz.Principal, taskID uint64) error {
	if err := authz.Check(p, authz.OpTaskDelete); err != nil {
		return err
	}

	if err := s.store.Tasks().Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Task")
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logger.FromContext(ctx).Info("task deleted", "task_id", taskID, "deleted_by", p.ID)
	return nil
}

// TaskHistory returns the status history of a task visible to p.
func (s *TaskService) TaskHistory(ctx context.Context, p *authz.Principal, taskID uint64) ([]models.TaskHistory, error) {
	if err := authz.Check(p, authz.OpTaskHistory); err != nil {
		return nil, err
	}

	task, err := s.store.Tasks().FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Task")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if err := authz.AuthorizeOwner(p, task.AssignedTo); err != nil {
		return nil, err
	}

	entries, err := s.store.History().ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task history: %w", err)
	}
	return entries, nil
}

func validateTaskFields(status models.TaskStatus, priority models.TaskPriority) error {
	if !status.IsValid() {
		return invalid("status", "must be one of pending, in_progress, completed")
	}
	if !priority.IsValid() {
		return invalid("priority", "must be one of low, medium, high")
	}
	return nil
}
