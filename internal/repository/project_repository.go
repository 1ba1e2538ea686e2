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

// DocumentMutator receives the current value of a JSON column (nil when the
// column is NULL) and returns the value to store.
type DocumentMutator func(current datatypes.JSON) (datatypes.JSON, error)

type ProjectFilter struct {
	Status string
	Search string
	Page   Page
}

// SearchCriteria selects projects by the content of their JSON documents.
// Zero fields are ignored.
type SearchCriteria struct {
	PoolType     string
	Equipment    string
	WaterFeature string
	HasIssues    bool
	ProgressMin  *float64
	ProgressMax  *float64
	Limit        int
}

type ProjectRepository interface {
	BaseRepository[models.Project]
	GetWithCreator(ctx context.Context, id uint) (*models.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]models.ProjectListItem, int64, error)
	ListPublic(ctx context.Context, limit int, featuredOnly bool) ([]models.PublicProject, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Project, error)
	DeleteWithUpdates(ctx context.Context, id uint) error
	LoadDocuments(ctx context.Context, id uint, columns ...string) (*models.Project, error)
	MutateDocument(ctx context.Context, id uint, column string, fn DocumentMutator) (datatypes.JSON, error)
	ReplaceDocument(ctx context.Context, id uint, column string, raw datatypes.JSON) (datatypes.JSON, error)
	Search(ctx context.Context, c SearchCriteria) ([]models.ProjectSearchHit, error)
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db, "project"), db: db}
}

func (r *projectRepository) GetWithCreator(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	err := r.db.WithContext(ctx).
		Preload("Creator").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "project", "get project failed")
	}
	return &p, nil
}

type projectListRow struct {
	models.ProjectListItem
	CreatorID    *uint
	CreatorName  *string
	CreatorEmail *string
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.ProjectListItem, int64, error) {
	page := filter.Page.Normalize()

	q := r.db.WithContext(ctx).Table("projects AS p")
	if filter.Status != "" {
		q = q.Where("p.status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := likePattern(filter.Search)
		q = q.Where("(p.title ILIKE ? OR p.client_name ILIKE ? OR p.client_email ILIKE ?)", like, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "project", "count projects failed")
	}

	var rows []projectListRow
	err := q.Select(`p.id, p.title, p.client_name, p.client_email, p.status, p.pool_type, p.budget,
			p.location, p.start_date, p.completion_date, p.is_public, p.featured, p.created_at, p.updated_at,
			u.id AS creator_id, u.name AS creator_name, u.email AS creator_email`).
		Joins("LEFT JOIN users AS u ON u.id = p.created_by").
		Order("p.updated_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, translate(err, "project", "list projects failed")
	}

	out := make([]models.ProjectListItem, 0, len(rows))
	for _, row := range rows {
		item := row.ProjectListItem
		if row.CreatorID != nil {
			item.Creator = &models.UserSummary{ID: *row.CreatorID, Name: deref(row.CreatorName), Email: deref(row.CreatorEmail)}
		}
		out = append(out, item)
	}
	return out, total, nil
}

func (r *projectRepository) ListPublic(ctx context.Context, limit int, featuredOnly bool) ([]models.PublicProject, error) {
	q := r.db.WithContext(ctx).Model(&models.Project{}).Where("is_public = ?", true)
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}
	var out []models.PublicProject
	err := q.Order("featured DESC").Order("created_at DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, translate(err, "project", "list public projects failed")
	}
	return out, nil
}

// UpdateFields applies a column map and returns the fresh row.
func (r *projectRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Project, error) {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error, "project", "update project failed")
	}
	if res.RowsAffected == 0 {
		return nil, appErr.NotFound("project")
	}
	var p models.Project
	if err := r.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteWithUpdates removes the project and its progress log in one transaction.
func (r *projectRepository) DeleteWithUpdates(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectUpdate{}).Error; err != nil {
			return translate(err, "project update", "delete project updates failed")
		}
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, "project", "delete project failed")
		}
		if res.RowsAffected == 0 {
			return appErr.NotFound("project")
		}
		return nil
	})
}

// LoadDocuments reads only the requested JSON columns of a project.
func (r *projectRepository) LoadDocuments(ctx context.Context, id uint, columns ...string) (*models.Project, error) {
	for _, c := range columns {
		if !models.IsDocumentColumn(c) {
			return nil, appErr.Newf(appErr.CodeInvalid, "unknown document column %q", c)
		}
	}
	var p models.Project
	err := r.db.WithContext(ctx).Select(append([]string{"id"}, columns...)).Take(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "project", "load project documents failed")
	}
	return &p, nil
}

// MutateDocument runs a read-modify-write cycle on one JSON column. The row is
// locked with SELECT ... FOR UPDATE for the duration of the transaction, so
// concurrent mutations of the same project are applied one after the other.
// An error returned by fn aborts the transaction and is returned unchanged.
func (r *projectRepository) MutateDocument(ctx context.Context, id uint, column string, fn DocumentMutator) (datatypes.JSON, error) {
	if !models.IsDocumentColumn(column) {
		return nil, appErr.Newf(appErr.CodeInvalid, "unknown document column %q", column)
	}

	var next datatypes.JSON
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", column).
			Take(&p, "id = ?", id).Error
		if err != nil {
			return translate(err, "project", "lock project failed")
		}

		next, err = fn(p.Document(column))
		if err != nil {
			return err
		}

		err = tx.Model(&models.Project{}).Where("id = ?", id).Updates(map[string]any{
			column:       next,
			"updated_at": time.Now(),
		}).Error
		if err != nil {
			return translate(err, "project", "write project document failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// ReplaceDocument overwrites one JSON column without reading it.
func (r *projectRepository) ReplaceDocument(ctx context.Context, id uint, column string, raw datatypes.JSON) (datatypes.JSON, error) {
	if !models.IsDocumentColumn(column) {
		return nil, appErr.Newf(appErr.CodeInvalid, "unknown document column %q", column)
	}
	res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(map[string]any{
		column:       raw,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return nil, translate(res.Error, "project", "replace project document failed")
	}
	if res.RowsAffected == 0 {
		return nil, appErr.NotFound("project")
	}
	return raw, nil
}

const searchLimit = 50

// Search filters projects on their specifications and notes documents. The
// predicates follow the in-memory helpers of internal/projectdata: substring
// matches are case-insensitive and water features must be non-zero.
func (r *projectRepository) Search(ctx context.Context, c SearchCriteria) ([]models.ProjectSearchHit, error) {
	limit := c.Limit
	if limit <= 0 || limit > searchLimit {
		limit = searchLimit
	}

	q := r.db.WithContext(ctx).Model(&models.Project{})

	if c.PoolType != "" {
		q = q.Where("specifications->'materials'->>'poolShell' ILIKE ?", likePattern(c.PoolType))
	}
	if c.Equipment != "" {
		q = q.Where(r.db.
			Where(datatypes.JSONQuery("specifications").HasKey("equipment", c.Equipment)).
			Or(`EXISTS (SELECT 1 FROM jsonb_each(CASE WHEN jsonb_typeof(specifications->'equipment') = 'object'
				THEN specifications->'equipment' ELSE '{}'::jsonb END) AS e
				WHERE e.value->>'type' ILIKE ?)`, likePattern(c.Equipment)))
	}
	if c.WaterFeature != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM jsonb_each(CASE WHEN jsonb_typeof(specifications->'waterFeatures') = 'object'
			THEN specifications->'waterFeatures' ELSE '{}'::jsonb END) AS w
			WHERE w.key ILIKE ? AND w.value NOT IN ('0'::jsonb, 'false'::jsonb, 'null'::jsonb))`, likePattern(c.WaterFeature))
	}
	if c.HasIssues {
		q = q.Where("(notes->'issues' @> ?::jsonb OR notes->'issues' @> ?::jsonb)",
			`[{"status":"open"}]`, `[{"status":"in_progress"}]`)
	}
	if c.ProgressMin != nil && c.ProgressMax != nil {
		q = q.Where(`(CASE WHEN jsonb_typeof(notes->'milestones') = 'array' AND jsonb_array_length(notes->'milestones') > 0
			THEN ROUND((SELECT COUNT(*) FILTER (WHERE m->>'status' = 'completed') FROM jsonb_array_elements(notes->'milestones') AS m)
				* 100.0 / jsonb_array_length(notes->'milestones'))
			ELSE 0 END) BETWEEN ? AND ?`, *c.ProgressMin, *c.ProgressMax)
	}

	var out []models.ProjectSearchHit
	err := q.Select("id", "title", "status", "pool_type", "specifications", "notes", "created_at").
		Order("updated_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "project", "search projects failed")
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
