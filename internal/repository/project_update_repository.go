package repository

import (
	"context"
	"time"

	"github.com/poolcraft/backoffice/internal/models"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"gorm.io/gorm"
)

type ProjectUpdateRepository interface {
	ListByProject(ctx context.Context, projectID uint) ([]models.ProjectUpdate, error)
	// Create inserts the update and, when it carries a status, moves the
	// project to that status in the same transaction.
	Create(ctx context.Context, u *models.ProjectUpdate) error
}

type projectUpdateRepository struct {
	db *gorm.DB
}

func NewProjectUpdateRepository(db *gorm.DB) ProjectUpdateRepository {
	return &projectUpdateRepository{db: db}
}

func (r *projectUpdateRepository) ListByProject(ctx context.Context, projectID uint) ([]models.ProjectUpdate, error) {
	var out []models.ProjectUpdate
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "project update", "list project updates failed")
	}
	return out, nil
}

func (r *projectUpdateRepository) Create(ctx context.Context, u *models.ProjectUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Project{}).Where("id = ?", u.ProjectID).Count(&exists).Error; err != nil {
			return translate(err, "project", "check project failed")
		}
		if exists == 0 {
			return appErr.NotFound("project")
		}
		if err := tx.Omit("Project", "Creator").Create(u).Error; err != nil {
			return translate(err, "project update", "create project update failed")
		}
		if u.Status == "" {
			return nil
		}
		err := tx.Model(&models.Project{}).Where("id = ?", u.ProjectID).Updates(map[string]any{
			"status":     u.Status,
			"updated_at": time.Now(),
		}).Error
		if err != nil {
			return translate(err, "project", "update project status failed")
		}
		return nil
	})
}
