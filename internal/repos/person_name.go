package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type PersonNameRepo interface {
	Create(ctx context.Context, tx *gorm.DB, names []*types.PersonName) ([]*types.PersonName, error)
	ListByPersonIDs(ctx context.Context, tx *gorm.DB, personIDs []uuid.UUID) ([]*types.PersonName, error)
}

type personNameRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonNameRepo(db *gorm.DB, baseLog *logger.Logger) PersonNameRepo {
	return &personNameRepo{db: db, log: baseLog.With("repo", "PersonNameRepo")}
}

func (pnr *personNameRepo) Create(ctx context.Context, tx *gorm.DB, names []*types.PersonName) ([]*types.PersonName, error) {
	transaction := tx
	if transaction == nil {
		transaction = pnr.db
	}
	if len(names) == 0 {
		return []*types.PersonName{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (pnr *personNameRepo) ListByPersonIDs(ctx context.Context, tx *gorm.DB, personIDs []uuid.UUID) ([]*types.PersonName, error) {
	transaction := tx
	if transaction == nil {
		transaction = pnr.db
	}
	var results []*types.PersonName
	if len(personIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("person_id IN ?", personIDs).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
