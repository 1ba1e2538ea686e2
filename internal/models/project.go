package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProjectPending    = "pending"
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
	ProjectCancelled  = "cancelled"
)

// Document column names on the projects table.
const (
	ColumnSpecifications = "specifications"
	ColumnImages         = "images"
	ColumnDocuments      = "documents"
	ColumnNotes          = "notes"
)

// Project is a pool construction job. The four JSON columns hold the typed
// documents from internal/projectdata and may be NULL.
type Project struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description,omitempty"`
	ClientName     string         `gorm:"type:varchar(255)" json:"clientName,omitempty"`
	ClientEmail    string         `gorm:"type:varchar(255)" json:"clientEmail,omitempty"`
	ClientPhone    string         `gorm:"type:varchar(50)" json:"clientPhone,omitempty"`
	Status         string         `gorm:"type:varchar(50);not null;default:pending;index" json:"status"`
	PoolType       string         `gorm:"type:varchar(100)" json:"poolType,omitempty"`
	PoolSize       string         `gorm:"type:varchar(100)" json:"poolSize,omitempty"`
	Budget         *float64       `gorm:"type:numeric(12,2)" json:"budget,omitempty"`
	Location       string         `gorm:"type:varchar(255)" json:"location,omitempty"`
	StartDate      *time.Time     `json:"startDate,omitempty"`
	CompletionDate *time.Time     `json:"completionDate,omitempty"`
	Specifications datatypes.JSON `gorm:"type:jsonb" json:"specifications"`
	Images         datatypes.JSON `gorm:"type:jsonb" json:"images"`
	Documents      datatypes.JSON `gorm:"type:jsonb" json:"documents"`
	Notes          datatypes.JSON `gorm:"type:jsonb" json:"notes"`
	Slug           *string        `gorm:"type:varchar(255);uniqueIndex" json:"slug,omitempty"`
	IsPublic       bool           `gorm:"not null;default:false" json:"isPublic"`
	Featured       bool           `gorm:"not null;default:false" json:"featured"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	CreatedBy      *uint          `gorm:"index" json:"createdBy,omitempty"`
	Creator        *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// Document returns the raw value of one of the JSON document columns.
func (p *Project) Document(column string) datatypes.JSON {
	switch column {
	case ColumnSpecifications:
		return p.Specifications
	case ColumnImages:
		return p.Images
	case ColumnDocuments:
		return p.Documents
	case ColumnNotes:
		return p.Notes
	}
	return nil
}

// IsDocumentColumn reports whether column names a JSON document column.
func IsDocumentColumn(column string) bool {
	switch column {
	case ColumnSpecifications, ColumnImages, ColumnDocuments, ColumnNotes:
		return true
	}
	return false
}

// ProjectDetail is a project with its progress log.
type ProjectDetail struct {
	Project
	Updates []ProjectUpdate `json:"updates"`
}

// ProjectListItem is a row of the admin project list.
type ProjectListItem struct {
	ID             uint         `json:"id"`
	Title          string       `json:"title"`
	ClientName     string       `json:"clientName,omitempty"`
	ClientEmail    string       `json:"clientEmail,omitempty"`
	Status         string       `json:"status"`
	PoolType       string       `json:"poolType,omitempty"`
	Budget         *float64     `json:"budget,omitempty"`
	Location       string       `json:"location,omitempty"`
	StartDate      *time.Time   `json:"startDate,omitempty"`
	CompletionDate *time.Time   `json:"completionDate,omitempty"`
	IsPublic       bool         `json:"isPublic"`
	Featured       bool         `json:"featured"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	Creator        *UserSummary `json:"creator,omitempty" gorm:"-"`
}

// PublicProject is what the marketing site may see of a project.
type PublicProject struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	PoolType    string         `json:"poolType,omitempty"`
	PoolSize    string         `json:"poolSize,omitempty"`
	Location    string         `json:"location,omitempty"`
	Images      datatypes.JSON `json:"images"`
	Slug        *string        `json:"slug,omitempty"`
	Featured    bool           `json:"featured"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ProjectSearchHit is a row returned by the document search.
type ProjectSearchHit struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	Status         string         `json:"status"`
	PoolType       string         `json:"poolType,omitempty"`
	Specifications datatypes.JSON `json:"specifications"`
	Notes          datatypes.JSON `json:"notes"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// ProjectUpdate is an entry of a project's progress log.
type ProjectUpdate struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"not null;index" json:"projectId"`
	Project     *Project       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Status      string         `gorm:"type:varchar(50)" json:"status,omitempty"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"images"`
	CreatedAt   time.Time      `json:"createdAt"`
	CreatedBy   *uint          `json:"createdBy,omitempty"`
	Creator     *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
