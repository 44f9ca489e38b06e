package types

import (
	"time"

	"github.com/google/uuid"
)

type SpouseRole string

const (
	SpouseRoleHusband SpouseRole = "husband"
	SpouseRoleWife    SpouseRole = "wife"
	SpouseRolePartner SpouseRole = "partner"
)

type FamilySpouse struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"family_id"`
	PersonID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"person_id"`
	Role      SpouseRole `gorm:"column:role;not null" json:"role"`
	SortOrder int        `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (FamilySpouse) TableName() string { return "family_spouse" }
