package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type FamilySpouseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, spouses []*types.FamilySpouse) ([]*types.FamilySpouse, error)
	ListByFamilyIDs(ctx context.Context, tx *gorm.DB, familyIDs []uuid.UUID) ([]*types.FamilySpouse, error)
}

type familySpouseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFamilySpouseRepo(db *gorm.DB, baseLog *logger.Logger) FamilySpouseRepo {
	return &familySpouseRepo{db: db, log: baseLog.With("repo", "FamilySpouseRepo")}
}

func (fsr *familySpouseRepo) Create(ctx context.Context, tx *gorm.DB, spouses []*types.FamilySpouse) ([]*types.FamilySpouse, error) {
	transaction := tx
	if transaction == nil {
		transaction = fsr.db
	}
	if len(spouses) == 0 {
		return []*types.FamilySpouse{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&spouses).Error; err != nil {
		return nil, err
	}
	return spouses, nil
}

func (fsr *familySpouseRepo) ListByFamilyIDs(ctx context.Context, tx *gorm.DB, familyIDs []uuid.UUID) ([]*types.FamilySpouse, error) {
	transaction := tx
	if transaction == nil {
		transaction = fsr.db
	}
	var results []*types.FamilySpouse
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
