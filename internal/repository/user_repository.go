package repository

import (
	"context"
	"time"

	"github.com/poolcraft/backoffice/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.User, error)
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db, "user"), db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		return translate(err, "user", "get user by email failed")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "user", "list users failed")
	}
	return out, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	_, err := r.UpdateFields(ctx, id, map[string]any{"password": hash})
	return err
}

// UpdateFields applies a column map and returns the fresh row.
func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error, "user", "update user failed")
	}
	if res.RowsAffected == 0 {
		return nil, translate(gorm.ErrRecordNotFound, "user", "")
	}
	var u models.User
	if err := r.GetByID(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
