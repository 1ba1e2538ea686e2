package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ContactNew       = "new"
	ContactContacted = "contacted"
	ContactQualified = "qualified"
	ContactConverted = "converted"
)

// Contact is an inquiry sent through the public contact form.
type Contact struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Email      string         `gorm:"type:varchar(255);not null" json:"email"`
	Phone      string         `gorm:"type:varchar(50)" json:"phone,omitempty"`
	PoolType   string         `gorm:"type:varchar(100)" json:"poolType,omitempty"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	Status     string         `gorm:"type:varchar(50);not null;default:new;index" json:"status"`
	AssignedTo *uint          `gorm:"index" json:"assignedTo,omitempty"`
	Assignee   *User          `gorm:"foreignKey:AssignedTo" json:"assignedUser,omitempty"`
	Notes      datatypes.JSON `gorm:"type:jsonb" json:"notes"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
