package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/team-task-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds lookup indexes that are not declared on the models.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		name    string
		columns string
	}{
		{&models.Task{}, "idx_tasks_team_assignee", "team_id, assigned_to"},
		{&models.Task{}, "idx_tasks_status", "status"},
		{&models.TeamMember{}, "idx_team_members_user_id", "user_id"},
		{&models.User{}, "idx_users_role", "role"},
		{&models.TaskHistory{}, "idx_task_histories_changed_by", "changed_by"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", stmt.Schema.Table, "columns", idx.columns)
	}

	return nil
}
