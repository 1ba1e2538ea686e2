package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/poolcraft/backoffice/internal/models"
	"github.com/poolcraft/backoffice/internal/projectdata"
	"github.com/poolcraft/backoffice/internal/repository"
	"github.com/poolcraft/backoffice/pkg/cache"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
	"github.com/poolcraft/backoffice/pkg/metrics"
)

// ProjectDocumentService edits the JSON documents of a project. Every
// mutation loads one column under a row lock, applies one projectdata helper
// and writes the column back in the same transaction.
type ProjectDocumentService interface {
	UpdateSpecifications(ctx context.Context, projectID uint, raw []byte, merge bool) (*projectdata.Specifications, error)

	AddGalleryImage(ctx context.Context, projectID, userID uint, img projectdata.GalleryImage) (*projectdata.GalleryImage, *projectdata.Images, error)
	RemoveGalleryImage(ctx context.Context, projectID uint, imageID string) (*projectdata.Images, error)
	AddProgressImage(ctx context.Context, projectID uint, img projectdata.ProgressImage) (*projectdata.ProgressImage, *projectdata.Images, error)

	AddInternalNote(ctx context.Context, projectID, userID uint, note projectdata.InternalNote) (*projectdata.InternalNote, *projectdata.Notes, error)
	AddCommunicationLog(ctx context.Context, projectID, userID uint, entry projectdata.CommunicationLog) (*projectdata.CommunicationLog, *projectdata.Notes, error)
	AddMilestone(ctx context.Context, projectID, userID uint, m projectdata.Milestone) (*projectdata.Milestone, *projectdata.Notes, error)
	UpdateMilestoneStatus(ctx context.Context, projectID uint, milestoneID string, status projectdata.MilestoneStatus, actualDate string) (*projectdata.Milestone, *projectdata.Notes, error)
	AddIssue(ctx context.Context, projectID, userID uint, issue projectdata.Issue) (*projectdata.Issue, *projectdata.Notes, error)
	ResolveIssue(ctx context.Context, projectID uint, issueID, resolution string, userID uint) (*projectdata.Issue, *projectdata.Notes, error)

	AddDocument(ctx context.Context, projectID uint, category string, doc projectdata.Document) (*projectdata.Document, *projectdata.Documents, error)
	RemoveDocument(ctx context.Context, projectID uint, category, documentID string) (*projectdata.Documents, error)

	Analytics(ctx context.Context, projectID uint) (*projectdata.Analytics, error)
	Search(ctx context.Context, criteria repository.SearchCriteria) ([]ProjectSearchResult, error)
}

// ProjectSearchResult is a search hit with its derived progress figures.
type ProjectSearchResult struct {
	models.ProjectSearchHit
	ProgressPercentage int `json:"progressPercentage"`
	ActiveIssuesCount  int `json:"activeIssuesCount"`
}

type projectDocumentService struct {
	projectRepo repository.ProjectRepository
	public      publicListing
}

func NewProjectDocumentService(projectRepo repository.ProjectRepository, c cache.Cache) ProjectDocumentService {
	return &projectDocumentService{projectRepo: projectRepo, public: publicListing{cache: c}}
}

var _ ProjectDocumentService = (*projectDocumentService)(nil)

// mutate runs fn on the decoded column value inside MutateDocument. An error
// from fn aborts the write.
func mutate[T any](
	ctx context.Context,
	repo repository.ProjectRepository,
	projectID uint,
	column, op string,
	decode func([]byte) (*T, error),
	encode func(*T) ([]byte, error),
	fn func(*T) (*T, error),
) (*T, error) {
	var result *T
	_, err := repo.MutateDocument(ctx, projectID, column, func(current datatypes.JSON) (datatypes.JSON, error) {
		doc, err := decode(current)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "stored "+column+" document is malformed")
		}
		next, err := fn(doc)
		if err != nil {
			return nil, err
		}
		b, err := encode(next)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "encode "+column+" failed")
		}
		result = next
		return datatypes.JSON(b), nil
	})
	if err != nil {
		if !appErr.IsCode(err, appErr.CodeNotFound) && !appErr.IsCode(err, appErr.CodeInvalid) {
			logger.FromContext(ctx).Error("document mutation failed",
				zap.Uint("project_id", projectID), zap.String("column", column), zap.String("operation", op), zap.Error(err))
		}
		return nil, err
	}

	metrics.RecordDocumentMutation(column, op)
	logger.FromContext(ctx).Info("document mutated",
		zap.Uint("project_id", projectID), zap.String("column", column), zap.String("operation", op))
	return result, nil
}

func (s *projectDocumentService) notes(ctx context.Context, projectID uint, op string, fn func(*projectdata.Notes) (*projectdata.Notes, error)) (*projectdata.Notes, error) {
	return mutate(ctx, s.projectRepo, projectID, models.ColumnNotes, op, projectdata.DecodeNotes, projectdata.EncodeNotes, fn)
}

func (s *projectDocumentService) images(ctx context.Context, projectID uint, op string, fn func(*projectdata.Images) (*projectdata.Images, error)) (*projectdata.Images, error) {
	out, err := mutate(ctx, s.projectRepo, projectID, models.ColumnImages, op, projectdata.DecodeImages, projectdata.EncodeImages, fn)
	if err == nil {
		s.public.invalidate(ctx)
	}
	return out, err
}

func (s *projectDocumentService) UpdateSpecifications(ctx context.Context, projectID uint, raw []byte, merge bool) (*projectdata.Specifications, error) {
	specs, err := projectdata.ValidateSpecifications(raw)
	if err != nil {
		return nil, err
	}

	if merge {
		return mutate(ctx, s.projectRepo, projectID, models.ColumnSpecifications, "merge",
			projectdata.DecodeSpecifications, projectdata.EncodeSpecifications,
			func(current *projectdata.Specifications) (*projectdata.Specifications, error) {
				return projectdata.MergeSpecifications(current, specs), nil
			})
	}

	b, err := projectdata.EncodeSpecifications(specs)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "encode specifications failed")
	}
	if _, err := s.projectRepo.ReplaceDocument(ctx, projectID, models.ColumnSpecifications, b); err != nil {
		return nil, err
	}
	metrics.RecordDocumentMutation(models.ColumnSpecifications, "replace")
	logger.FromContext(ctx).Info("specifications replaced", zap.Uint("project_id", projectID))
	return specs, nil
}

func (s *projectDocumentService) AddGalleryImage(ctx context.Context, projectID, userID uint, img projectdata.GalleryImage) (*projectdata.GalleryImage, *projectdata.Images, error) {
	img.ID = projectdata.NewImageID()
	img.UploadedAt = projectdata.Now()
	img.UploadedBy = userID
	if img.Category == "" {
		img.Category = projectdata.CategoryGallery
	}
	if err := projectdata.ValidateStruct(&img); err != nil {
		return nil, nil, err
	}

	images, err := s.images(ctx, projectID, "add_gallery_image", func(cur *projectdata.Images) (*projectdata.Images, error) {
		return projectdata.AddImageToGallery(cur, img), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &img, images, nil
}

func (s *projectDocumentService) RemoveGalleryImage(ctx context.Context, projectID uint, imageID string) (*projectdata.Images, error) {
	return s.images(ctx, projectID, "remove_gallery_image", func(cur *projectdata.Images) (*projectdata.Images, error) {
		if _, ok := projectdata.FindGalleryImage(cur, imageID); !ok {
			return nil, appErr.NotFound("image")
		}
		return projectdata.RemoveImageFromGallery(cur, imageID), nil
	})
}

func (s *projectDocumentService) AddProgressImage(ctx context.Context, projectID uint, img projectdata.ProgressImage) (*projectdata.ProgressImage, *projectdata.Images, error) {
	img.ID = projectdata.NewProgressImageID()
	if img.Date == "" {
		img.Date = projectdata.Now()
	}
	if err := projectdata.ValidateStruct(&img); err != nil {
		return nil, nil, err
	}

	images, err := s.images(ctx, projectID, "add_progress_image", func(cur *projectdata.Images) (*projectdata.Images, error) {
		return projectdata.AddProgressImage(cur, img), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &img, images, nil
}

func (s *projectDocumentService) AddInternalNote(ctx context.Context, projectID, userID uint, note projectdata.InternalNote) (*projectdata.InternalNote, *projectdata.Notes, error) {
	note.ID = projectdata.NewNoteID()
	note.CreatedAt = projectdata.Now()
	note.CreatedBy = userID
	if note.Category == "" {
		note.Category = "general"
	}
	if note.Priority == "" {
		note.Priority = "medium"
	}
	if err := projectdata.ValidateStruct(&note); err != nil {
		return nil, nil, err
	}

	notes, err := s.notes(ctx, projectID, "add_internal_note", func(cur *projectdata.Notes) (*projectdata.Notes, error) {
		return projectdata.AddInternalNote(cur, note), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &note, notes, nil
}

func (s *projectDocumentService) AddCommunicationLog(ctx context.Context, projectID, userID uint, entry projectdata.CommunicationLog) (*projectdata.CommunicationLog, *projectdata.Notes, error) {
	entry.ID = projectdata.NewCommunicationID()
	entry.CreatedAt = projectdata.Now()
	entry.CreatedBy = userID
	if err := projectdata.ValidateStruct(&entry); err != nil {
		return nil, nil, err
	}

	notes, err := s.notes(ctx, projectID, "add_communication", func(cur *projectdata.Notes) (*projectdata.Notes, error) {
		return projectdata.AddCommunicationLog(cur, entry), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &entry, notes, nil
}

func (s *projectDocumentService) AddMilestone(ctx context.Context, projectID, userID uint, m projectdata.Milestone) (*projectdata.Milestone, *projectdata.Notes, error) {
	m.ID = projectdata.NewMilestoneID()
	m.Status = projectdata.MilestonePending
	m.CreatedAt = projectdata.Now()
	m.CreatedBy = userID
	if m.Priority == "" {
		m.Priority = "medium"
	}
	if err := projectdata.ValidateStruct(&m); err != nil {
		return nil, nil, err
	}
	if _, ok := projectdata.ParseDate(m.PlannedDate); !ok {
		return nil, nil, appErr.Invalid("plannedDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	}

	notes, err := s.notes(ctx, projectID, "add_milestone", func(cur *projectdata.Notes) (*projectdata.Notes, error) {
		return projectdata.AddMilestone(cur, m), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &m, notes, nil
}

func (s *projectDocumentService) UpdateMilestoneStatus(ctx context.Context, projectID uint, milestoneID string, status projectdata.MilestoneStatus, actualDate string) (*projectdata.Milestone, *projectdata.Notes, error) {
	if !status.Valid() {
		return nil, nil, appErr.Newf(appErr.CodeInvalid, "invalid milestone status %q", status)
	}
	if status == projectdata.MilestoneCompleted && actualDate == "" {
		actualDate = projectdata.Now()
	}

	notes, err := s.notes(ctx, projectID, "update_milestone", func(cur *projectdata.Notes) (*projectdata.Notes, error) {
		if _, ok := projectdata.FindMilestone(cur, milestoneID); !ok {
			return nil, appErr.NotFound("milestone")
		}
		return projectdata.UpdateMilestoneStatus(cur, milestoneID, status, actualDate), nil
	})
	if err != nil {
		return nil, nil, err
	}
	m, _ := projectdata.FindMilestone(notes, milestoneID)
	return &m, notes, nil
}

func (s *projectDocumentService) AddIssue(ctx context.Context, projectID, userID uint, issue projectdata.Issue) (*projectdata.Issue, *projectdata.Notes, error) {
	issue.ID = projectdata.NewIssueID()
	issue.Status = projectdata.IssueOpen
	issue.ReportedAt = projectdata.Now()
	issue.ReportedBy = userID
	if issue.Severity == "" {
		issue.Severity = projectdata.SeverityMedium
	}
	if issue.Category == "" {
		issue.Category = "general"
	}
	if err := projectdata.ValidateStruct(&issue); err != nil {
		return nil, nil, err
	}

	notes, err := s.notes(ctx, projectID, "add_issue", func(cur *projectdata.Notes) (*projectdata.Notes, error) {
		return projectdata.AddIssue(cur, issue), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &issue, notes, nil
}

func (s *projectDocumentService) ResolveIssue(ctx context.Context, projectID uint, issueID, resolution string, userID uint) (*projectdata.Issue, *projectdata.Notes, error) {
	notes, err := s.notes(ctx, projectID, "resolve_issue", func(cur *projectdata.Notes) (*projectdata.Notes, error) {
		if _, ok := projectdata.FindIssue(cur, issueID); !ok {
			return nil, appErr.NotFound("issue")
		}
		return projectdata.ResolveIssue(cur, issueID, resolution, userID), nil
	})
	if err != nil {
		return nil, nil, err
	}
	issue, _ := projectdata.FindIssue(notes, issueID)
	return &issue, notes, nil
}

func (s *projectDocumentService) AddDocument(ctx context.Context, projectID uint, category string, doc projectdata.Document) (*projectdata.Document, *projectdata.Documents, error) {
	c, ok := projectdata.ParseDocumentCategory(category)
	if !ok {
		return nil, nil, appErr.Newf(appErr.CodeInvalid, "unknown document category %q", category)
	}
	doc.ID = projectdata.NewDocumentID()
	if err := projectdata.ValidateStruct(&doc); err != nil {
		return nil, nil, err
	}
	if !c.AcceptsType(doc.Type) {
		return nil, nil, appErr.Newf(appErr.CodeInvalid, "document type %q is not accepted in %s", doc.Type, c)
	}

	docs, err := mutate(ctx, s.projectRepo, projectID, models.ColumnDocuments, "add_document",
		projectdata.DecodeDocuments, projectdata.EncodeDocuments,
		func(cur *projectdata.Documents) (*projectdata.Documents, error) {
			return projectdata.AddDocument(cur, c, doc), nil
		})
	if err != nil {
		return nil, nil, err
	}
	return &doc, docs, nil
}

func (s *projectDocumentService) RemoveDocument(ctx context.Context, projectID uint, category, documentID string) (*projectdata.Documents, error) {
	c, ok := projectdata.ParseDocumentCategory(category)
	if !ok {
		return nil, appErr.Newf(appErr.CodeInvalid, "unknown document category %q", category)
	}
	return mutate(ctx, s.projectRepo, projectID, models.ColumnDocuments, "remove_document",
		projectdata.DecodeDocuments, projectdata.EncodeDocuments,
		func(cur *projectdata.Documents) (*projectdata.Documents, error) {
			if _, ok := projectdata.FindDocument(cur, c, documentID); !ok {
				return nil, appErr.NotFound("document")
			}
			return projectdata.RemoveDocument(cur, c, documentID), nil
		})
}

func (s *projectDocumentService) Analytics(ctx context.Context, projectID uint) (*projectdata.Analytics, error) {
	p, err := s.projectRepo.LoadDocuments(ctx, projectID, models.ColumnSpecifications, models.ColumnImages, models.ColumnNotes)
	if err != nil {
		return nil, err
	}
	specs, err := projectdata.DecodeSpecifications(p.Specifications)
	if err != nil {
		return nil, malformed(models.ColumnSpecifications, err)
	}
	images, err := projectdata.DecodeImages(p.Images)
	if err != nil {
		return nil, malformed(models.ColumnImages, err)
	}
	notes, err := projectdata.DecodeNotes(p.Notes)
	if err != nil {
		return nil, malformed(models.ColumnNotes, err)
	}
	a := projectdata.Analyze(specs, images, notes)
	return &a, nil
}

// Search narrows the candidates in SQL and confirms each hit with the
// in-memory predicates, so LIKE wildcards in the criteria match literally.
func (s *projectDocumentService) Search(ctx context.Context, criteria repository.SearchCriteria) ([]ProjectSearchResult, error) {
	hits, err := s.projectRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectSearchResult, 0, len(hits))
	for _, h := range hits {
		specs, err := projectdata.DecodeSpecifications(h.Specifications)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping project with malformed specifications", zap.Uint("project_id", h.ID), zap.Error(err))
			continue
		}
		notes, err := projectdata.DecodeNotes(h.Notes)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping project with malformed notes", zap.Uint("project_id", h.ID), zap.Error(err))
			continue
		}
		if criteria.PoolType != "" && !projectdata.SearchByPoolType(specs, criteria.PoolType) {
			continue
		}
		if criteria.Equipment != "" && !specs.HasEquipment(criteria.Equipment) && !projectdata.SearchByEquipment(specs, criteria.Equipment) {
			continue
		}
		if criteria.WaterFeature != "" && !projectdata.HasWaterFeature(specs, criteria.WaterFeature) {
			continue
		}
		out = append(out, ProjectSearchResult{
			ProjectSearchHit:   h,
			ProgressPercentage: projectdata.ProgressPercentage(notes),
			ActiveIssuesCount:  projectdata.ActiveIssuesCount(notes),
		})
	}
	return out, nil
}

func malformed(column string, err error) error {
	return appErr.Wrap(err, appErr.CodeInternal, "stored "+column+" document is malformed")
}
