package types

import "github.com/google/uuid"

// NewID returns a time-ordered v7 UUID. Export xref numbering follows
// slice order, which follows creation order, so ids stay monotone
// within a process.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
