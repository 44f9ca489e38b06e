package types

import (
	"time"

	"github.com/google/uuid"
)

type MediaLink struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MediaID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"media_id"`
	PersonID  *uuid.UUID `gorm:"type:uuid;index" json:"person_id,omitempty"`
	EventID   *uuid.UUID `gorm:"type:uuid;index" json:"event_id,omitempty"`
	SourceID  *uuid.UUID `gorm:"type:uuid;index" json:"source_id,omitempty"`
	FamilyID  *uuid.UUID `gorm:"type:uuid;index" json:"family_id,omitempty"`
	SortOrder int        `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (MediaLink) TableName() string { return "media_link" }
