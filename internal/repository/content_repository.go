package repository

import (
	"context"
	"time"

	"github.com/poolcraft/backoffice/internal/models"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"gorm.io/gorm"
)

type ContentRepository interface {
	Pages() BaseRepository[models.ProfessionalInfoPage]
	Sections() BaseRepository[models.ContentSection]

	ListActivePages(ctx context.Context) ([]models.ProfessionalInfoPage, error)
	ListAllPages(ctx context.Context) ([]models.ProfessionalInfoPage, error)
	GetActivePageBySlug(ctx context.Context, slug string) (*models.ProfessionalInfoPage, error)
	UpdatePage(ctx context.Context, id uint, fields map[string]any) (*models.ProfessionalInfoPage, error)
	SoftDeletePage(ctx context.Context, id uint) (*models.ProfessionalInfoPage, error)

	ListActiveSections(ctx context.Context, pageID uint) ([]models.ContentSection, error)
	GetActiveSection(ctx context.Context, id uint) (*models.ContentSection, error)
	UpdateSection(ctx context.Context, id uint, fields map[string]any) (*models.ContentSection, error)
	SoftDeleteSection(ctx context.Context, id uint) (*models.ContentSection, error)
	ReorderSections(ctx context.Context, pageID uint, sectionIDs []uint) error

	ListActiveCategories(ctx context.Context) ([]models.ContentCategory, error)
	ListActiveTags(ctx context.Context) ([]models.ContentTag, error)
}

type contentRepository struct {
	pages    BaseRepository[models.ProfessionalInfoPage]
	sections BaseRepository[models.ContentSection]
	db       *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{
		pages:    NewBaseRepository[models.ProfessionalInfoPage](db, "page"),
		sections: NewBaseRepository[models.ContentSection](db, "section"),
		db:       db,
	}
}

func (r *contentRepository) Pages() BaseRepository[models.ProfessionalInfoPage] { return r.pages }
func (r *contentRepository) Sections() BaseRepository[models.ContentSection]     { return r.sections }

func (r *contentRepository) ListActivePages(ctx context.Context) ([]models.ProfessionalInfoPage, error) {
	var out []models.ProfessionalInfoPage
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "page", "list pages failed")
	}
	return out, nil
}

func (r *contentRepository) ListAllPages(ctx context.Context) ([]models.ProfessionalInfoPage, error) {
	var out []models.ProfessionalInfoPage
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "page", "list pages failed")
	}
	return out, nil
}

func (r *contentRepository) GetActivePageBySlug(ctx context.Context, slug string) (*models.ProfessionalInfoPage, error) {
	var p models.ProfessionalInfoPage
	if err := r.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&p).Error; err != nil {
		return nil, translate(err, "page", "get page failed")
	}
	return &p, nil
}

func (r *contentRepository) UpdatePage(ctx context.Context, id uint, fields map[string]any) (*models.ProfessionalInfoPage, error) {
	var p models.ProfessionalInfoPage
	if err := updateAndReload(ctx, r.db, &p, id, fields, "page"); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *contentRepository) SoftDeletePage(ctx context.Context, id uint) (*models.ProfessionalInfoPage, error) {
	return r.UpdatePage(ctx, id, map[string]any{"is_active": false})
}

func (r *contentRepository) ListActiveSections(ctx context.Context, pageID uint) ([]models.ContentSection, error) {
	var out []models.ContentSection
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND is_active = ?", pageID, true).
		Order("sort_order ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "section", "list sections failed")
	}
	return out, nil
}

func (r *contentRepository) GetActiveSection(ctx context.Context, id uint) (*models.ContentSection, error) {
	var s models.ContentSection
	if err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&s).Error; err != nil {
		return nil, translate(err, "section", "get section failed")
	}
	return &s, nil
}

func (r *contentRepository) UpdateSection(ctx context.Context, id uint, fields map[string]any) (*models.ContentSection, error) {
	var s models.ContentSection
	if err := updateAndReload(ctx, r.db, &s, id, fields, "section"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *contentRepository) SoftDeleteSection(ctx context.Context, id uint) (*models.ContentSection, error) {
	return r.UpdateSection(ctx, id, map[string]any{"is_active": false})
}

// ReorderSections sets sort_order to the position of each id in sectionIDs.
// Ids that do not belong to the page are ignored.
func (r *contentRepository) ReorderSections(ctx context.Context, pageID uint, sectionIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for i, id := range sectionIDs {
			err := tx.Model(&models.ContentSection{}).
				Where("id = ? AND page_id = ?", id, pageID).
				Updates(map[string]any{"sort_order": i, "updated_at": now}).Error
			if err != nil {
				return translate(err, "section", "reorder sections failed")
			}
		}
		return nil
	})
}

func (r *contentRepository) ListActiveCategories(ctx context.Context) ([]models.ContentCategory, error) {
	var out []models.ContentCategory
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "category", "list categories failed")
	}
	return out, nil
}

func (r *contentRepository) ListActiveTags(ctx context.Context) ([]models.ContentTag, error) {
	var out []models.ContentTag
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name_en ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "tag", "list tags failed")
	}
	return out, nil
}

func updateAndReload[T any](ctx context.Context, db *gorm.DB, dest *T, id uint, fields map[string]any, what string) error {
	fields["updated_at"] = time.Now()
	res := db.WithContext(ctx).Model(dest).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, what, "update "+what+" failed")
	}
	if res.RowsAffected == 0 {
		return appErr.NotFound(what)
	}
	if err := db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		return translate(err, what, "reload "+what+" failed")
	}
	return nil
}
