package types

import (
	"time"

	"github.com/google/uuid"
)

// PersonAncestry is one row of the materialized ancestor-descendant
// closure. Depth is the shortest path length; the builder emits only
// depth >= 1, depth-0 self rows are permitted by the schema.
type PersonAncestry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TreeID       uuid.UUID `gorm:"type:uuid;not null;index" json:"tree_id"`
	AncestorID   uuid.UUID `gorm:"type:uuid;not null;index:idx_person_ancestry,unique,priority:1" json:"ancestor_id"`
	DescendantID uuid.UUID `gorm:"type:uuid;not null;index:idx_person_ancestry,unique,priority:2" json:"descendant_id"`
	Depth        int       `gorm:"column:depth;not null" json:"depth"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PersonAncestry) TableName() string { return "person_ancestry" }
