package repository

import (
	"context"

	"github.com/yukikurage/team-task-api/internal/database"
	"github.com/yukikurage/team-task-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(ctx context.Context, id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Model(team).Select("name", "description", "updated_at").Updates(team).Error
}

// List retrieves teams matching the filter, ordered by ID
func (r *GormTeamRepository) List(ctx context.Context, filter TeamFilter) ([]models.Team, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Team{}).Scopes(
		database.ContainsFold("teams.name", filter.Name),
		database.ContainsFold("teams.description", filter.Description),
	)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	teams := []models.Team{}
	if err := query.Session(&gorm.Session{}).
		Order("teams.id ASC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&teams).Error; err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}
