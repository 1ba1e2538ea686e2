package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/poolcraft/backoffice/internal/models"
	"github.com/poolcraft/backoffice/internal/repository"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
)

type ContentService interface {
	ListPages(ctx context.Context) ([]models.ProfessionalInfoPage, error)
	ListAllPages(ctx context.Context) ([]models.ProfessionalInfoPage, error)
	GetPage(ctx context.Context, slug string) (*models.PageWithSections, error)
	CreatePage(ctx context.Context, input *PageInput) (*models.ProfessionalInfoPage, error)
	UpdatePage(ctx context.Context, pageID uint, input *PageInput) (*models.ProfessionalInfoPage, error)
	DeletePage(ctx context.Context, pageID uint) (*models.ProfessionalInfoPage, error)

	ListSections(ctx context.Context, pageID uint) ([]models.ContentSection, error)
	GetSection(ctx context.Context, sectionID uint) (*models.ContentSection, error)
	CreateSection(ctx context.Context, input *SectionInput) (*models.ContentSection, error)
	UpdateSection(ctx context.Context, sectionID uint, input *SectionInput) (*models.ContentSection, error)
	DeleteSection(ctx context.Context, sectionID uint) (*models.ContentSection, error)
	ReorderSections(ctx context.Context, pageID uint, sectionIDs []uint) ([]models.ContentSection, error)

	ListCategories(ctx context.Context) ([]models.ContentCategory, error)
	ListTags(ctx context.Context) ([]models.ContentTag, error)
}

// PageInput is used for create and update. On update only non-nil fields
// are written.
type PageInput struct {
	Slug              *string
	Title             *string
	TitleEn           *string
	Description       *string
	DescriptionEn     *string
	Content           json.RawMessage
	MetaTitle         *string
	MetaTitleEn       *string
	MetaDescription   *string
	MetaDescriptionEn *string
	IsActive          *bool
	SortOrder         *int
}

type SectionInput struct {
	PageID      *uint
	SectionType *string
	Title       *string
	TitleEn     *string
	Content     json.RawMessage
	SortOrder   *int
	IsActive    *bool
}

type contentService struct {
	repo repository.ContentRepository
}

func NewContentService(repo repository.ContentRepository) ContentService {
	return &contentService{repo: repo}
}

var _ ContentService = (*contentService)(nil)

func (s *contentService) ListPages(ctx context.Context) ([]models.ProfessionalInfoPage, error) {
	return s.repo.ListActivePages(ctx)
}

func (s *contentService) ListAllPages(ctx context.Context) ([]models.ProfessionalInfoPage, error) {
	return s.repo.ListAllPages(ctx)
}

func (s *contentService) GetPage(ctx context.Context, slug string) (*models.PageWithSections, error) {
	p, err := s.repo.GetActivePageBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	sections, err := s.repo.ListActiveSections(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &models.PageWithSections{ProfessionalInfoPage: *p, Sections: sections}, nil
}

func (s *contentService) CreatePage(ctx context.Context, in *PageInput) (*models.ProfessionalInfoPage, error) {
	if str(in.Slug) == "" || str(in.Title) == "" || str(in.TitleEn) == "" {
		return nil, appErr.Invalid("slug, title and titleEn are required")
	}
	content, err := jsonContent(in.Content, "[]")
	if err != nil {
		return nil, err
	}

	p := &models.ProfessionalInfoPage{
		Slug:              *in.Slug,
		Title:             *in.Title,
		TitleEn:           *in.TitleEn,
		Description:       str(in.Description),
		DescriptionEn:     str(in.DescriptionEn),
		Content:           content,
		MetaTitle:         str(in.MetaTitle),
		MetaTitleEn:       str(in.MetaTitleEn),
		MetaDescription:   str(in.MetaDescription),
		MetaDescriptionEn: str(in.MetaDescriptionEn),
		IsActive:          true,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.SortOrder != nil {
		p.SortOrder = *in.SortOrder
	}

	if err := s.repo.Pages().Create(ctx, p); err != nil {
		return nil, err
	}
	// gorm skips a false bool that has a column default on insert.
	if !p.IsActive {
		if p, err = s.repo.UpdatePage(ctx, p.ID, map[string]any{"is_active": false}); err != nil {
			return nil, err
		}
	}
	logger.FromContext(ctx).Info("page created", zap.Uint("page_id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

func (s *contentService) UpdatePage(ctx context.Context, pageID uint, in *PageInput) (*models.ProfessionalInfoPage, error) {
	fields := map[string]any{}
	setString(fields, "slug", in.Slug)
	setString(fields, "title", in.Title)
	setString(fields, "title_en", in.TitleEn)
	setString(fields, "description", in.Description)
	setString(fields, "description_en", in.DescriptionEn)
	setString(fields, "meta_title", in.MetaTitle)
	setString(fields, "meta_title_en", in.MetaTitleEn)
	setString(fields, "meta_description", in.MetaDescription)
	setString(fields, "meta_description_en", in.MetaDescriptionEn)
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.SortOrder != nil {
		fields["sort_order"] = *in.SortOrder
	}
	if len(in.Content) > 0 {
		content, err := jsonContent(in.Content, "")
		if err != nil {
			return nil, err
		}
		fields["content"] = content
	}

	p, err := s.repo.UpdatePage(ctx, pageID, fields)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("page updated", zap.Uint("page_id", pageID))
	return p, nil
}

func (s *contentService) DeletePage(ctx context.Context, pageID uint) (*models.ProfessionalInfoPage, error) {
	p, err := s.repo.SoftDeletePage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("page deactivated", zap.Uint("page_id", pageID))
	return p, nil
}

func (s *contentService) ListSections(ctx context.Context, pageID uint) ([]models.ContentSection, error) {
	return s.repo.ListActiveSections(ctx, pageID)
}

func (s *contentService) GetSection(ctx context.Context, sectionID uint) (*models.ContentSection, error) {
	return s.repo.GetActiveSection(ctx, sectionID)
}

func (s *contentService) CreateSection(ctx context.Context, in *SectionInput) (*models.ContentSection, error) {
	if in.PageID == nil || str(in.SectionType) == "" || len(in.Content) == 0 {
		return nil, appErr.Invalid("pageId, sectionType and content are required")
	}
	if !validSectionType(*in.SectionType) {
		return nil, appErr.Newf(appErr.CodeInvalid, "unknown section type %q", *in.SectionType)
	}
	content, err := jsonContent(in.Content, "")
	if err != nil {
		return nil, err
	}

	var page models.ProfessionalInfoPage
	if err := s.repo.Pages().GetByID(ctx, *in.PageID, &page); err != nil {
		return nil, err
	}

	sec := &models.ContentSection{
		PageID:      *in.PageID,
		SectionType: *in.SectionType,
		Title:       str(in.Title),
		TitleEn:     str(in.TitleEn),
		Content:     content,
		IsActive:    true,
	}
	if in.SortOrder != nil {
		sec.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		sec.IsActive = *in.IsActive
	}

	if err := s.repo.Sections().Create(ctx, sec); err != nil {
		return nil, err
	}
	if !sec.IsActive {
		if sec, err = s.repo.UpdateSection(ctx, sec.ID, map[string]any{"is_active": false}); err != nil {
			return nil, err
		}
	}
	logger.FromContext(ctx).Info("section created", zap.Uint("section_id", sec.ID), zap.Uint("page_id", sec.PageID))
	return sec, nil
}

func (s *contentService) UpdateSection(ctx context.Context, sectionID uint, in *SectionInput) (*models.ContentSection, error) {
	fields := map[string]any{}
	if in.SectionType != nil {
		if !validSectionType(*in.SectionType) {
			return nil, appErr.Newf(appErr.CodeInvalid, "unknown section type %q", *in.SectionType)
		}
		fields["section_type"] = *in.SectionType
	}
	setString(fields, "title", in.Title)
	setString(fields, "title_en", in.TitleEn)
	if in.SortOrder != nil {
		fields["sort_order"] = *in.SortOrder
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if len(in.Content) > 0 {
		content, err := jsonContent(in.Content, "")
		if err != nil {
			return nil, err
		}
		fields["content"] = content
	}

	sec, err := s.repo.UpdateSection(ctx, sectionID, fields)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("section updated", zap.Uint("section_id", sectionID))
	return sec, nil
}

func (s *contentService) DeleteSection(ctx context.Context, sectionID uint) (*models.ContentSection, error) {
	sec, err := s.repo.SoftDeleteSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("section deactivated", zap.Uint("section_id", sectionID))
	return sec, nil
}

func (s *contentService) ReorderSections(ctx context.Context, pageID uint, sectionIDs []uint) ([]models.ContentSection, error) {
	if len(sectionIDs) == 0 {
		return nil, appErr.Invalid("sectionIds must be a non-empty array")
	}
	if err := s.repo.ReorderSections(ctx, pageID, sectionIDs); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("sections reordered", zap.Uint("page_id", pageID), zap.Int("count", len(sectionIDs)))
	return s.repo.ListActiveSections(ctx, pageID)
}

func (s *contentService) ListCategories(ctx context.Context) ([]models.ContentCategory, error) {
	return s.repo.ListActiveCategories(ctx)
}

func (s *contentService) ListTags(ctx context.Context) ([]models.ContentTag, error) {
	return s.repo.ListActiveTags(ctx)
}

func validSectionType(t string) bool {
	switch t {
	case models.SectionHero, models.SectionText, models.SectionImage, models.SectionGallery,
		models.SectionVideo, models.SectionList, models.SectionTable, models.SectionCTA:
		return true
	}
	return false
}

// jsonContent checks raw and falls back to def when raw is empty.
func jsonContent(raw json.RawMessage, def string) (datatypes.JSON, error) {
	if len(raw) == 0 {
		raw = json.RawMessage(def)
	}
	if !json.Valid(raw) {
		return nil, appErr.Invalid("content must be valid JSON")
	}
	return datatypes.JSON(raw), nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
