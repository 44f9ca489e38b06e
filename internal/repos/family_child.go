package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type FamilyChildRepo interface {
	Create(ctx context.Context, tx *gorm.DB, children []*types.FamilyChild) ([]*types.FamilyChild, error)
	ListByFamilyIDs(ctx context.Context, tx *gorm.DB, familyIDs []uuid.UUID) ([]*types.FamilyChild, error)
}

type familyChildRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFamilyChildRepo(db *gorm.DB, baseLog *logger.Logger) FamilyChildRepo {
	return &familyChildRepo{db: db, log: baseLog.With("repo", "FamilyChildRepo")}
}

func (fcr *familyChildRepo) Create(ctx context.Context, tx *gorm.DB, children []*types.FamilyChild) ([]*types.FamilyChild, error) {
	transaction := tx
	if transaction == nil {
		transaction = fcr.db
	}
	if len(children) == 0 {
		return []*types.FamilyChild{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (fcr *familyChildRepo) ListByFamilyIDs(ctx context.Context, tx *gorm.DB, familyIDs []uuid.UUID) ([]*types.FamilyChild, error) {
	transaction := tx
	if transaction == nil {
		transaction = fcr.db
	}
	var results []*types.FamilyChild
	if len(familyIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("family_id IN ?", familyIDs).
		Order("sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
