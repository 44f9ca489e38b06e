package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TreeImportStatusCompleted = "completed"
	TreeImportStatusFailed    = "failed"
)

// TreeImport records one GEDCOM import run so its warnings outlive the
// request that triggered it.
type TreeImport struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TreeID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tree_id"`
	FileName  string         `gorm:"column:file_name" json:"file_name,omitempty"`
	Status    string         `gorm:"column:status;not null" json:"status"`
	Persons   int            `gorm:"column:persons;not null;default:0" json:"persons"`
	Families  int            `gorm:"column:families;not null;default:0" json:"families"`
	Summary   datatypes.JSON `gorm:"column:summary" json:"summary,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (TreeImport) TableName() string { return "tree_import" }
