package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventType string

const (
	// Individual events.
	EventTypeBirth          EventType = "birth"
	EventTypeBaptism        EventType = "baptism"
	EventTypeChristening    EventType = "christening"
	EventTypeDeath          EventType = "death"
	EventTypeBurial         EventType = "burial"
	EventTypeCremation      EventType = "cremation"
	EventTypeAdoption       EventType = "adoption"
	EventTypeImmigration    EventType = "immigration"
	EventTypeEmigration     EventType = "emigration"
	EventTypeNaturalization EventType = "naturalization"
	EventTypeCensus         EventType = "census"
	EventTypeGraduation     EventType = "graduation"
	EventTypeRetirement     EventType = "retirement"
	EventTypeWill           EventType = "will"
	EventTypeProbate        EventType = "probate"
	EventTypeResidence      EventType = "residence"

	// Family events.
	EventTypeMarriage      EventType = "marriage"
	EventTypeDivorce       EventType = "divorce"
	EventTypeEngagement    EventType = "engagement"
	EventTypeMarriageBanns EventType = "marriage_banns"
	EventTypeAnnulment     EventType = "annulment"

	// May attach to either a person or a family.
	EventTypeOccupation EventType = "occupation"
	EventTypeOther      EventType = "other"
)

var familyEventTypes = map[EventType]struct{}{
	EventTypeMarriage:      {},
	EventTypeDivorce:       {},
	EventTypeEngagement:    {},
	EventTypeMarriageBanns: {},
	EventTypeAnnulment:     {},
}

// IsFamilyEvent reports whether the type belongs to the family-only
// partition. Occupation and Other are excluded from both partitions.
func (t EventType) IsFamilyEvent() bool {
	_, ok := familyEventTypes[t]
	return ok
}

func (t EventType) IsIndividualEvent() bool {
	if t == EventTypeOccupation || t == EventTypeOther {
		return false
	}
	return !t.IsFamilyEvent()
}

// Event attaches to at most one person and at most one family; the type
// decides which association is expected.
type Event struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TreeID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tree_id"`
	EventType   EventType      `gorm:"column:event_type;not null" json:"event_type"`
	DateValue   string         `gorm:"column:date_value" json:"date_value,omitempty"`
	DateSort    *time.Time     `gorm:"column:date_sort;index" json:"date_sort,omitempty"`
	PlaceID     *uuid.UUID     `gorm:"type:uuid;index" json:"place_id,omitempty"`
	PersonID    *uuid.UUID     `gorm:"type:uuid;index" json:"person_id,omitempty"`
	FamilyID    *uuid.UUID     `gorm:"type:uuid;index" json:"family_id,omitempty"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Event) TableName() string { return "event" }
