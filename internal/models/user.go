package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Teams         []TeamMember `gorm:"foreignKey:UserID" json:"-"`
	AssignedTasks []Task       `gorm:"foreignKey:AssignedTo" json:"-"`
}
