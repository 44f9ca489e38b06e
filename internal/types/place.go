package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Place struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TreeID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tree_id"`
	Name      string         `gorm:"column:name;not null;index" json:"name"`
	Latitude  *float64       `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude *float64       `gorm:"column:longitude" json:"longitude,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Place) TableName() string { return "place" }
