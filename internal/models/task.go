package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether a task in status s can no longer be changed.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	AssignedTo  uint64       `gorm:"not null;index" json:"assigned_to"`
	TeamID      uint64       `gorm:"not null;index" json:"team_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Team     Team          `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Assignee User          `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	History  []TaskHistory `gorm:"foreignKey:TaskID" json:"history,omitempty"`
}
