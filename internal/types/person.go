package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

type Person struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TreeID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tree_id"`
	Sex       Sex            `gorm:"column:sex;not null;default:'unknown'" json:"sex"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Person) TableName() string { return "person" }
