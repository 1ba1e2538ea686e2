package repository

import (
	"context"
	"time"

	"github.com/poolcraft/backoffice/internal/models"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactFilter struct {
	Status string
	Search string
	Page   Page
}

type ContactRepository interface {
	BaseRepository[models.Contact]
	GetWithAssignee(ctx context.Context, id uint) (*models.Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]models.Contact, int64, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Contact, error)
	// MutateNotes is the contact counterpart of ProjectRepository.MutateDocument.
	MutateNotes(ctx context.Context, id uint, fn DocumentMutator) (datatypes.JSON, error)
}

type contactRepository struct {
	BaseRepository[models.Contact]
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{BaseRepository: NewBaseRepository[models.Contact](db, "contact"), db: db}
}

func (r *contactRepository) GetWithAssignee(ctx context.Context, id uint) (*models.Contact, error) {
	var c models.Contact
	if err := r.db.WithContext(ctx).Preload("Assignee").First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err, "contact", "get contact failed")
	}
	return &c, nil
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter) ([]models.Contact, int64, error) {
	page := filter.Page.Normalize()

	q := r.db.WithContext(ctx).Model(&models.Contact{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := likePattern(filter.Search)
		q = q.Where("(name ILIKE ? OR email ILIKE ? OR message ILIKE ?)", like, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "contact", "count contacts failed")
	}

	var out []models.Contact
	err := q.Preload("Assignee").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, translate(err, "contact", "list contacts failed")
	}
	return out, total, nil
}

func (r *contactRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Contact, error) {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Contact{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error, "contact", "update contact failed")
	}
	if res.RowsAffected == 0 {
		return nil, appErr.NotFound("contact")
	}
	return r.GetWithAssignee(ctx, id)
}

func (r *contactRepository) MutateNotes(ctx context.Context, id uint, fn DocumentMutator) (datatypes.JSON, error) {
	var next datatypes.JSON
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Contact
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "notes").
			Take(&c, "id = ?", id).Error
		if err != nil {
			return translate(err, "contact", "lock contact failed")
		}
		next, err = fn(c.Notes)
		if err != nil {
			return err
		}
		err = tx.Model(&models.Contact{}).Where("id = ?", id).Updates(map[string]any{
			"notes":      next,
			"updated_at": time.Now(),
		}).Error
		if err != nil {
			return translate(err, "contact", "write contact notes failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}
