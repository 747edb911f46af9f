package repository

import (
	"context"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/utils"
)

// Store groups the repositories and runs units of work atomically.
type Store interface {
	Users() UserRepository
	Teams() TeamRepository
	TeamMembers() TeamMemberRepository
	Tasks() TaskRepository
	History() TaskHistoryRepository

	// Transaction runs fn with a Store bound to a single transaction.
	// Returning an error from fn rolls back every write made through it.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination, ordered by ascending ID
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update saves the mutable columns of a task
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task together with its history. It returns
	// gorm.ErrRecordNotFound and rolls back when no task row was deleted.
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	TeamID     *uint64
	AssignedTo *uint64
	Pagination utils.PaginationParams
}

// TaskHistoryRepository is the append-only status ledger of tasks.
type TaskHistoryRepository interface {
	// Append records one status change
	Append(ctx context.Context, entry *models.TaskHistory) error

	// ListByTask returns the entries of a task in insertion order
	ListByTask(ctx context.Context, taskID uint64) ([]models.TaskHistory, error)

	// CountByTask returns the number of entries of a task
	CountByTask(ctx context.Context, taskID uint64) (int64, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id uint64) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	// List filters by case-insensitive substrings of name and description
	List(ctx context.Context, filter TeamFilter) ([]models.Team, int64, error)
}

// TeamFilter holds filtering options for listing teams
type TeamFilter struct {
	Name        string
	Description string
	Pagination  utils.PaginationParams
}

// TeamMemberRepository defines the interface for team membership data access
type TeamMemberRepository interface {
	// Create adds a membership. Duplicate (team, user) pairs fail with gorm.ErrDuplicatedKey
	Create(ctx context.Context, member *models.TeamMember) error

	// FindByID finds a membership by ID
	FindByID(ctx context.Context, id uint64) (*models.TeamMember, error)

	// Delete removes a membership
	Delete(ctx context.Context, id uint64) error

	// Exists reports whether the user belongs to the team
	Exists(ctx context.Context, teamID, userID uint64) (bool, error)

	// ListByTeam lists the memberships of a team with users preloaded
	ListByTeam(ctx context.Context, teamID uint64) ([]models.TeamMember, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	UserID     *uint64
	Role       *models.UserRole
	Pagination utils.PaginationParams
}
