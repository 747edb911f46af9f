package models

import "time"

// TeamMember joins users and teams. A (team, user) pair appears at most once.
type TeamMember struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TeamID    uint64    `gorm:"not null;uniqueIndex:idx_team_members_team_user" json:"team_id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_team_members_team_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
