package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Media struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TreeID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tree_id"`
	FileName    string         `gorm:"column:file_name;not null" json:"file_name"`
	MimeType    string         `gorm:"column:mime_type;not null" json:"mime_type"`
	FilePath    string         `gorm:"column:file_path;not null" json:"file_path"`
	FileSize    int64          `gorm:"column:file_size;not null;default:0" json:"file_size"`
	Title       string         `gorm:"column:title" json:"title,omitempty"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Media) TableName() string { return "media" }
