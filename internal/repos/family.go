package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type FamilyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, families []*types.Family) ([]*types.Family, error)
	ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.Family, error)
}

type familyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFamilyRepo(db *gorm.DB, baseLog *logger.Logger) FamilyRepo {
	return &familyRepo{db: db, log: baseLog.With("repo", "FamilyRepo")}
}

func (fr *familyRepo) Create(ctx context.Context, tx *gorm.DB, families []*types.Family) ([]*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(families) == 0 {
		return []*types.Family{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

func (fr *familyRepo) ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Family
	query := transaction.WithContext(ctx).
		Where("tree_id = ?", treeID).
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
