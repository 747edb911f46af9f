package repository

import (
	"context"

	"github.com/yukikurage/team-task-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskHistoryRepository is a GORM implementation of TaskHistoryRepository.
// Entries are never updated; they are removed only by TaskRepository.Delete.
type GormTaskHistoryRepository struct {
	db *gorm.DB
}

// NewTaskHistoryRepository creates a new TaskHistoryRepository
func NewTaskHistoryRepository(db *gorm.DB) TaskHistoryRepository {
	return &GormTaskHistoryRepository{db: db}
}

func (r *GormTaskHistoryRepository) Append(ctx context.Context, entry *models.TaskHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormTaskHistoryRepository) ListByTask(ctx context.Context, taskID uint64) ([]models.TaskHistory, error) {
	entries := []models.TaskHistory{}
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormTaskHistoryRepository) CountByTask(ctx context.Context, taskID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TaskHistory{}).Where("task_id = ?", taskID).Count(&count).Error
	return count, err
}
