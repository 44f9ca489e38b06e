package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Source struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TreeID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"tree_id"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Author         string         `gorm:"column:author" json:"author,omitempty"`
	Publisher      string         `gorm:"column:publisher" json:"publisher,omitempty"`
	Abbreviation   string         `gorm:"column:abbreviation" json:"abbreviation,omitempty"`
	RepositoryName string         `gorm:"column:repository_name" json:"repository_name,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Source) TableName() string { return "source" }
