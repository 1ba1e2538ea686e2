package types

import "encoding/json"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Project dates accept YYYY-MM-DD or RFC 3339.
type ProjectCreateRequest struct {
	Title          string          `json:"title" validate:"required,max=255"`
	Description    string          `json:"description"`
	ClientName     string          `json:"clientName" validate:"max=255"`
	ClientEmail    string          `json:"clientEmail" validate:"omitempty,email"`
	ClientPhone    string          `json:"clientPhone" validate:"max=50"`
	Status         string          `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	PoolType       string          `json:"poolType" validate:"max=100"`
	PoolSize       string          `json:"poolSize" validate:"max=100"`
	Budget         *float64        `json:"budget" validate:"omitempty,gte=0"`
	Location       string          `json:"location" validate:"max=255"`
	StartDate      string          `json:"startDate"`
	CompletionDate string          `json:"completionDate"`
	Specifications json.RawMessage `json:"specifications"`
	Images         json.RawMessage `json:"images"`
	Documents      json.RawMessage `json:"documents"`
	Notes          json.RawMessage `json:"notes"`
	IsPublic       bool            `json:"isPublic"`
	Featured       bool            `json:"featured"`
}

type ProjectUpdateRequest struct {
	Title          *string         `json:"title" validate:"omitempty,min=1,max=255"`
	Description    *string         `json:"description"`
	ClientName     *string         `json:"clientName" validate:"omitempty,max=255"`
	ClientEmail    *string         `json:"clientEmail" validate:"omitempty,email"`
	ClientPhone    *string         `json:"clientPhone" validate:"omitempty,max=50"`
	Status         *string         `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	PoolType       *string         `json:"poolType" validate:"omitempty,max=100"`
	PoolSize       *string         `json:"poolSize" validate:"omitempty,max=100"`
	Budget         *float64        `json:"budget" validate:"omitempty,gte=0"`
	Location       *string         `json:"location" validate:"omitempty,max=255"`
	StartDate      *string         `json:"startDate"`
	CompletionDate *string         `json:"completionDate"`
	Specifications json.RawMessage `json:"specifications"`
	Images         json.RawMessage `json:"images"`
	Documents      json.RawMessage `json:"documents"`
	Notes          json.RawMessage `json:"notes"`
	IsPublic       *bool           `json:"isPublic"`
	Featured       *bool           `json:"featured"`
}

// ProjectProgressRequest adds an entry to a project's progress timeline.
type ProjectProgressRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description"`
	Status      string          `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Images      json.RawMessage `json:"images"`
}

type MilestoneStatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=pending in_progress completed delayed cancelled"`
	ActualDate string `json:"actualDate"`
}

// IssueRequest accepts the severity under either name; severity wins.
type IssueRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Severity    string   `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Category    string   `json:"category"`
	AssignedTo  *uint    `json:"assignedTo"`
	Tags        []string `json:"tags"`
}

type ResolveIssueRequest struct {
	Resolution string `json:"resolution" validate:"required"`
}

type ProjectSearchRequest struct {
	PoolType      string         `json:"poolType"`
	Equipment     string         `json:"equipment"`
	WaterFeatures string         `json:"waterFeatures"`
	HasIssues     bool           `json:"hasIssues"`
	ProgressRange *ProgressRange `json:"progressRange"`
	Limit         int            `json:"limit" validate:"gte=0,lte=100"`
}

// ProgressRange bounds are percentages; either may be omitted.
type ProgressRange struct {
	Min *float64 `json:"min" validate:"omitempty,gte=0,lte=100"`
	Max *float64 `json:"max" validate:"omitempty,gte=0,lte=100"`
}

type ContactSubmitRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=50"`
	PoolType string `json:"poolType" validate:"max=100"`
	Message  string `json:"message" validate:"required"`
}

type ContactUpdateRequest struct {
	Status     *string         `json:"status" validate:"omitempty,oneof=new contacted qualified converted"`
	AssignedTo *uint           `json:"assignedTo"`
	Notes      json.RawMessage `json:"notes"`
}

type AssignRequest struct {
	AssignedTo uint `json:"assignedTo" validate:"required"`
}

type CompleteFollowUpRequest struct {
	Notes string `json:"notes"`
}

type PageRequest struct {
	Slug              *string         `json:"slug" validate:"omitempty,max=255"`
	Title             *string         `json:"title" validate:"omitempty,max=255"`
	TitleEn           *string         `json:"titleEn" validate:"omitempty,max=255"`
	Description       *string         `json:"description"`
	DescriptionEn     *string         `json:"descriptionEn"`
	Content           json.RawMessage `json:"content"`
	MetaTitle         *string         `json:"metaTitle" validate:"omitempty,max=255"`
	MetaTitleEn       *string         `json:"metaTitleEn" validate:"omitempty,max=255"`
	MetaDescription   *string         `json:"metaDescription"`
	MetaDescriptionEn *string         `json:"metaDescriptionEn"`
	IsActive          *bool           `json:"isActive"`
	SortOrder         *int            `json:"sortOrder"`
}

type SectionRequest struct {
	PageID      *uint           `json:"pageId"`
	SectionType *string         `json:"sectionType" validate:"omitempty,oneof=hero text image gallery video list table cta"`
	Title       *string         `json:"title" validate:"omitempty,max=255"`
	TitleEn     *string         `json:"titleEn" validate:"omitempty,max=255"`
	Content     json.RawMessage `json:"content"`
	SortOrder   *int            `json:"sortOrder"`
	IsActive    *bool           `json:"isActive"`
}

type ReorderSectionsRequest struct {
	SectionIDs []uint `json:"sectionIds" validate:"required,min=1,dive,gt=0"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin editor"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin editor"`
	IsActive *bool   `json:"isActive"`
}
