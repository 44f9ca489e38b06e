package types

import (
	"time"

	"github.com/google/uuid"
)

type ChildType string

const (
	ChildTypeBiological ChildType = "biological"
	ChildTypeAdopted    ChildType = "adopted"
	ChildTypeFoster     ChildType = "foster"
	ChildTypeStep       ChildType = "step"
	ChildTypeUnknown    ChildType = "unknown"
)

type FamilyChild struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"family_id"`
	PersonID  uuid.UUID `gorm:"type:uuid;not null;index" json:"person_id"`
	ChildType ChildType `gorm:"column:child_type;not null;default:'biological'" json:"child_type"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FamilyChild) TableName() string { return "family_child" }
