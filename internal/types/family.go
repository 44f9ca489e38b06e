package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Family has no inherent couple or children fields; relationships live
// in FamilySpouse and FamilyChild rows.
type Family struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TreeID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tree_id"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Family) TableName() string { return "family" }
