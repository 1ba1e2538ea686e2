package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProfessionalInfoPage is a bilingual knowledge-base page (maintenance,
// safety, design, ...). Hebrew is the primary language, English fields end
// in En.
type ProfessionalInfoPage struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Slug              string         `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	Title             string         `gorm:"type:text;not null" json:"title"`
	TitleEn           string         `gorm:"type:text;not null" json:"titleEn"`
	Description       string         `gorm:"type:text" json:"description,omitempty"`
	DescriptionEn     string         `gorm:"type:text" json:"descriptionEn,omitempty"`
	Content           datatypes.JSON `gorm:"type:jsonb;not null" json:"content"`
	MetaTitle         string         `gorm:"type:text" json:"metaTitle,omitempty"`
	MetaTitleEn       string         `gorm:"type:text" json:"metaTitleEn,omitempty"`
	MetaDescription   string         `gorm:"type:text" json:"metaDescription,omitempty"`
	MetaDescriptionEn string         `gorm:"type:text" json:"metaDescriptionEn,omitempty"`
	IsActive          bool           `gorm:"not null;default:true" json:"isActive"`
	SortOrder         int            `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

const (
	SectionHero    = "hero"
	SectionText    = "text"
	SectionImage   = "image"
	SectionGallery = "gallery"
	SectionVideo   = "video"
	SectionList    = "list"
	SectionTable   = "table"
	SectionCTA     = "cta"
)

// ContentSection is one block of a ProfessionalInfoPage.
type ContentSection struct {
	ID          uint                  `gorm:"primaryKey" json:"id"`
	PageID      uint                  `gorm:"not null;index" json:"pageId"`
	Page        *ProfessionalInfoPage `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SectionType string                `gorm:"type:text;not null" json:"sectionType"`
	Title       string                `gorm:"type:text" json:"title,omitempty"`
	TitleEn     string                `gorm:"type:text" json:"titleEn,omitempty"`
	Content     datatypes.JSON        `gorm:"type:jsonb;not null" json:"content"`
	SortOrder   int                   `gorm:"not null;default:0" json:"sortOrder"`
	IsActive    bool                  `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ContentMedia is a file attached to a section.
type ContentMedia struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SectionID    uint            `gorm:"not null;index" json:"sectionId"`
	Section      *ContentSection `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	MediaType    string          `gorm:"type:text;not null" json:"mediaType"`
	FileName     string          `gorm:"type:text;not null" json:"fileName"`
	OriginalName string          `gorm:"type:text;not null" json:"originalName"`
	FilePath     string          `gorm:"type:text;not null" json:"filePath"`
	FileSize     int64           `json:"fileSize"`
	MimeType     string          `gorm:"type:text;not null" json:"mimeType"`
	AltText      string          `gorm:"type:text" json:"altText,omitempty"`
	AltTextEn    string          `gorm:"type:text" json:"altTextEn,omitempty"`
	Caption      string          `gorm:"type:text" json:"caption,omitempty"`
	CaptionEn    string          `gorm:"type:text" json:"captionEn,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (ContentMedia) TableName() string { return "content_media" }

type ContentCategory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	NameEn        string    `gorm:"type:text;not null" json:"nameEn"`
	Slug          string    `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	DescriptionEn string    `gorm:"type:text" json:"descriptionEn,omitempty"`
	Icon          string    `gorm:"type:text" json:"icon,omitempty"`
	Color         string    `gorm:"type:text" json:"color,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"isActive"`
	SortOrder     int       `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ContentTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	NameEn    string    `gorm:"type:text;not null" json:"nameEn"`
	Slug      string    `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	Color     string    `gorm:"type:text" json:"color,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type PageTag struct {
	ID        uint                  `gorm:"primaryKey" json:"id"`
	PageID    uint                  `gorm:"not null;uniqueIndex:idx_page_tag" json:"pageId"`
	Page      *ProfessionalInfoPage `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TagID     uint                  `gorm:"not null;uniqueIndex:idx_page_tag" json:"tagId"`
	Tag       *ContentTag           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time             `json:"createdAt"`
}

type PageCategory struct {
	ID         uint                  `gorm:"primaryKey" json:"id"`
	PageID     uint                  `gorm:"not null;uniqueIndex:idx_page_category" json:"pageId"`
	Page       *ProfessionalInfoPage `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CategoryID uint                  `gorm:"not null;uniqueIndex:idx_page_category" json:"categoryId"`
	Category   *ContentCategory      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// PageWithSections is the public view of a page.
type PageWithSections struct {
	ProfessionalInfoPage
	Sections []ContentSection `json:"sections"`
}
