package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/poolcraft/backoffice/internal/models"
	"github.com/poolcraft/backoffice/internal/projectdata"
	"github.com/poolcraft/backoffice/internal/repository"
	"github.com/poolcraft/backoffice/pkg/cache"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
	"github.com/poolcraft/backoffice/pkg/metrics"
	"github.com/poolcraft/backoffice/pkg/utils"
)

// DefaultPublicLimit is the size of the marketing-site project strip.
const DefaultPublicLimit = 6

const publicCachePrefix = "projects:public"

type ProjectService interface {
	CreateProject(ctx context.Context, userID uint, input *CreateProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, projectID uint) (*models.ProjectDetail, error)
	ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]models.ProjectListItem, int64, error)
	UpdateProject(ctx context.Context, projectID uint, input *UpdateProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID uint) error

	AddUpdate(ctx context.Context, projectID, userID uint, input *ProjectUpdateInput) (*models.ProjectUpdate, error)
	ListPublic(ctx context.Context, limit int, featuredOnly bool) ([]models.PublicProject, error)
}

// CreateProjectInput carries the optional JSON documents as raw bytes; each
// one is validated against its typed shape before it is stored.
type CreateProjectInput struct {
	Title          string
	Description    string
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	Status         string
	PoolType       string
	PoolSize       string
	Budget         *float64
	Location       string
	StartDate      *time.Time
	CompletionDate *time.Time
	Specifications []byte
	Images         []byte
	Documents      []byte
	Notes          []byte
	IsPublic       bool
	Featured       bool
}

// UpdateProjectInput is a partial update; nil fields are left untouched.
type UpdateProjectInput struct {
	Title          *string
	Description    *string
	ClientName     *string
	ClientEmail    *string
	ClientPhone    *string
	Status         *string
	PoolType       *string
	PoolSize       *string
	Budget         *float64
	Location       *string
	StartDate      *time.Time
	CompletionDate *time.Time
	Specifications []byte
	Images         []byte
	Documents      []byte
	Notes          []byte
	IsPublic       *bool
	Featured       *bool
}

type ProjectUpdateInput struct {
	Title       string
	Description string
	Status      string
	Images      []byte
}

type projectService struct {
	projectRepo repository.ProjectRepository
	updateRepo  repository.ProjectUpdateRepository
	public      publicListing
}

func NewProjectService(projectRepo repository.ProjectRepository, updateRepo repository.ProjectUpdateRepository, c cache.Cache, cacheTTL time.Duration) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		updateRepo:  updateRepo,
		public:      publicListing{cache: c, ttl: cacheTTL},
	}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, userID uint, input *CreateProjectInput) (*models.Project, error) {
	log := logger.FromContext(ctx)
	log.Info("create project called", zap.Uint("user_id", userID), zap.String("title", input.Title))

	docs, err := validateDocuments(input.Specifications, input.Images, input.Documents, input.Notes)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.ProjectPending
	}

	p := &models.Project{
		Title:          input.Title,
		Description:    input.Description,
		ClientName:     input.ClientName,
		ClientEmail:    input.ClientEmail,
		ClientPhone:    input.ClientPhone,
		Status:         status,
		PoolType:       input.PoolType,
		PoolSize:       input.PoolSize,
		Budget:         input.Budget,
		Location:       input.Location,
		StartDate:      input.StartDate,
		CompletionDate: input.CompletionDate,
		Specifications: docs[models.ColumnSpecifications],
		Images:         docs[models.ColumnImages],
		Documents:      docs[models.ColumnDocuments],
		Notes:          docs[models.ColumnNotes],
		Slug:           slugFor(input.Title),
		IsPublic:       input.IsPublic,
		Featured:       input.Featured,
		CreatedBy:      &userID,
	}

	if err := s.projectRepo.Create(ctx, p); err != nil {
		log.Error("create project failed", zap.Error(err))
		return nil, err
	}

	s.public.invalidate(ctx)
	log.Info("project created", zap.Uint("project_id", p.ID), zap.Uint("user_id", userID))
	return p, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID uint) (*models.ProjectDetail, error) {
	p, err := s.projectRepo.GetWithCreator(ctx, projectID)
	if err != nil {
		return nil, err
	}
	updates, err := s.updateRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &models.ProjectDetail{Project: *p, Updates: updates}, nil
}

func (s *projectService) ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]models.ProjectListItem, int64, error) {
	logger.FromContext(ctx).Debug("list projects", zap.String("status", filter.Status), zap.Int("page", filter.Page.Page))
	return s.projectRepo.List(ctx, filter)
}

func (s *projectService) UpdateProject(ctx context.Context, projectID uint, in *UpdateProjectInput) (*models.Project, error) {
	log := logger.FromContext(ctx)
	log.Info("update project", zap.Uint("project_id", projectID))

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
		fields["slug"] = slugFor(*in.Title)
	}
	setString(fields, "description", in.Description)
	setString(fields, "client_name", in.ClientName)
	setString(fields, "client_email", in.ClientEmail)
	setString(fields, "client_phone", in.ClientPhone)
	setString(fields, "status", in.Status)
	setString(fields, "pool_type", in.PoolType)
	setString(fields, "pool_size", in.PoolSize)
	setString(fields, "location", in.Location)
	if in.Budget != nil {
		fields["budget"] = *in.Budget
	}
	if in.StartDate != nil {
		fields["start_date"] = *in.StartDate
	}
	if in.CompletionDate != nil {
		fields["completion_date"] = *in.CompletionDate
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}
	if in.Featured != nil {
		fields["featured"] = *in.Featured
	}

	docs, err := validateDocuments(in.Specifications, in.Images, in.Documents, in.Notes)
	if err != nil {
		return nil, err
	}
	for column, raw := range docs {
		fields[column] = raw
	}

	if len(fields) == 0 {
		var p models.Project
		if err := s.projectRepo.GetByID(ctx, projectID, &p); err != nil {
			return nil, err
		}
		return &p, nil
	}

	p, err := s.projectRepo.UpdateFields(ctx, projectID, fields)
	if err != nil {
		log.Error("update project failed", zap.Uint("project_id", projectID), zap.Error(err))
		return nil, err
	}

	s.public.invalidate(ctx)
	log.Info("project updated", zap.Uint("project_id", projectID), zap.Int("fields", len(fields)))
	return p, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID uint) error {
	log := logger.FromContext(ctx)
	if err := s.projectRepo.DeleteWithUpdates(ctx, projectID); err != nil {
		return err
	}
	s.public.invalidate(ctx)
	log.Info("project deleted", zap.Uint("project_id", projectID))
	return nil
}

func (s *projectService) AddUpdate(ctx context.Context, projectID, userID uint, in *ProjectUpdateInput) (*models.ProjectUpdate, error) {
	var images datatypes.JSON
	if len(in.Images) > 0 {
		v, err := projectdata.ValidateImages(in.Images)
		if err != nil {
			return nil, err
		}
		if images, err = projectdata.EncodeImages(v); err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "encode images failed")
		}
	}

	u := &models.ProjectUpdate{
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Images:      images,
		CreatedBy:   &userID,
	}
	if err := s.updateRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	if in.Status != "" {
		s.public.invalidate(ctx)
	}
	logger.FromContext(ctx).Info("project update added",
		zap.Uint("project_id", projectID), zap.Uint("update_id", u.ID), zap.String("status", in.Status))
	return u, nil
}

func (s *projectService) ListPublic(ctx context.Context, limit int, featuredOnly bool) ([]models.PublicProject, error) {
	if limit <= 0 {
		limit = DefaultPublicLimit
	}
	key := fmt.Sprintf("%s:%d:%t", publicCachePrefix, limit, featuredOnly)

	var cached []models.PublicProject
	if s.public.get(ctx, key, &cached) {
		return cached, nil
	}

	out, err := s.projectRepo.ListPublic(ctx, limit, featuredOnly)
	if err != nil {
		return nil, err
	}
	s.public.set(ctx, key, out)
	return out, nil
}

// publicListing wraps the cache used for the marketing-site listing. Cache
// failures are logged and never fail the request.
type publicListing struct {
	cache cache.Cache
	ttl   time.Duration
}

func (p publicListing) get(ctx context.Context, key string, dest any) bool {
	if p.cache == nil {
		return false
	}
	err := p.cache.GetJSON(ctx, key, dest)
	switch {
	case err == nil:
		metrics.PublicCacheLookups.WithLabelValues("hit").Inc()
		return true
	case errors.Is(err, cache.ErrMiss):
		metrics.PublicCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.PublicCacheLookups.WithLabelValues("error").Inc()
		logger.FromContext(ctx).Warn("public cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (p publicListing) set(ctx context.Context, key string, value any) {
	if p.cache == nil || p.ttl <= 0 {
		return
	}
	if err := p.cache.SetJSON(ctx, key, value, p.ttl); err != nil {
		logger.FromContext(ctx).Warn("public cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (p publicListing) invalidate(ctx context.Context) {
	if p.cache == nil {
		return
	}
	if err := p.cache.DeletePrefix(ctx, publicCachePrefix); err != nil {
		logger.FromContext(ctx).Warn("public cache invalidation failed", zap.Error(err))
	}
}

// validateDocuments checks the non-empty raw documents and returns them
// re-encoded in canonical form, keyed by column.
func validateDocuments(specs, images, documents, notes []byte) (map[string]datatypes.JSON, error) {
	out := map[string]datatypes.JSON{}
	if len(specs) > 0 {
		v, err := projectdata.ValidateSpecifications(specs)
		if err != nil {
			return nil, err
		}
		if err := put(out, models.ColumnSpecifications, v, projectdata.EncodeSpecifications); err != nil {
			return nil, err
		}
	}
	if len(images) > 0 {
		v, err := projectdata.ValidateImages(images)
		if err != nil {
			return nil, err
		}
		if err := put(out, models.ColumnImages, v, projectdata.EncodeImages); err != nil {
			return nil, err
		}
	}
	if len(documents) > 0 {
		v, err := projectdata.ValidateDocuments(documents)
		if err != nil {
			return nil, err
		}
		if err := put(out, models.ColumnDocuments, v, projectdata.EncodeDocuments); err != nil {
			return nil, err
		}
	}
	if len(notes) > 0 {
		v, err := projectdata.ValidateNotes(notes)
		if err != nil {
			return nil, err
		}
		if err := put(out, models.ColumnNotes, v, projectdata.EncodeNotes); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func put[T any](out map[string]datatypes.JSON, column string, v *T, encode func(*T) ([]byte, error)) error {
	b, err := encode(v)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "encode "+column+" failed")
	}
	out[column] = b
	return nil
}

func slugFor(title string) *string {
	s := utils.Slugify(title)
	if s == "" {
		return nil
	}
	return &s
}

func setString(fields map[string]any, column string, v *string) {
	if v != nil {
		fields[column] = *v
	}
}
