package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TreeID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tree_id"`
	Text      string         `gorm:"column:text;not null" json:"text"`
	PersonID  *uuid.UUID     `gorm:"type:uuid;index" json:"person_id,omitempty"`
	EventID   *uuid.UUID     `gorm:"type:uuid;index" json:"event_id,omitempty"`
	FamilyID  *uuid.UUID     `gorm:"type:uuid;index" json:"family_id,omitempty"`
	SourceID  *uuid.UUID     `gorm:"type:uuid;index" json:"source_id,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Note) TableName() string { return "note" }
