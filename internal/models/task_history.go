package models

import "time"

// TaskHistory is one entry of a task's append-only status ledger.
type TaskHistory struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	TaskID    uint64     `gorm:"not null;index" json:"task_id"`
	ChangedBy uint64     `gorm:"not null" json:"changed_by"`
	OldStatus TaskStatus `gorm:"type:varchar(20);not null" json:"old_status"`
	NewStatus TaskStatus `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedAt time.Time  `gorm:"autoCreateTime" json:"changed_at"`
}
