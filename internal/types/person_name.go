package types

import (
	"time"

	"github.com/google/uuid"
)

type NameType string

const (
	NameTypeBirth       NameType = "birth"
	NameTypeMarried     NameType = "married"
	NameTypeAlsoKnownAs NameType = "aka"
	NameTypeMaiden      NameType = "maiden"
	NameTypeReligious   NameType = "religious"
	NameTypeOther       NameType = "other"
)

type PersonName struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PersonID   uuid.UUID `gorm:"type:uuid;not null;index" json:"person_id"`
	NameType   NameType  `gorm:"column:name_type;not null;default:'birth'" json:"name_type"`
	GivenNames string    `gorm:"column:given_names" json:"given_names,omitempty"`
	Surname    string    `gorm:"column:surname" json:"surname,omitempty"`
	Prefix     string    `gorm:"column:prefix" json:"prefix,omitempty"`
	Suffix     string    `gorm:"column:suffix" json:"suffix,omitempty"`
	Nickname   string    `gorm:"column:nickname" json:"nickname,omitempty"`
	IsPrimary  bool      `gorm:"column:is_primary;not null;default:false" json:"is_primary"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PersonName) TableName() string { return "person_name" }
