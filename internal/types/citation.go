package types

import (
	"time"

	"github.com/google/uuid"
)

type Confidence string

const (
	ConfidenceVeryLow  Confidence = "very_low"
	ConfidenceLow      Confidence = "low"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceHigh     Confidence = "high"
	ConfidenceVeryHigh Confidence = "very_high"
)

type Citation struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SourceID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"source_id"`
	PersonID   *uuid.UUID `gorm:"type:uuid;index" json:"person_id,omitempty"`
	EventID    *uuid.UUID `gorm:"type:uuid;index" json:"event_id,omitempty"`
	FamilyID   *uuid.UUID `gorm:"type:uuid;index" json:"family_id,omitempty"`
	Page       string     `gorm:"column:page" json:"page,omitempty"`
	Confidence Confidence `gorm:"column:confidence;not null;default:'medium'" json:"confidence"`
	Text       string     `gorm:"column:text" json:"text,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Citation) TableName() string { return "citation" }
