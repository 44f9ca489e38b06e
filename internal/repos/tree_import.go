package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type TreeImportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, imports []*types.TreeImport) ([]*types.TreeImport, error)
	ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.TreeImport, error)
}

type treeImportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTreeImportRepo(db *gorm.DB, baseLog *logger.Logger) TreeImportRepo {
	return &treeImportRepo{db: db, log: baseLog.With("repo", "TreeImportRepo")}
}

func (tir *treeImportRepo) Create(ctx context.Context, tx *gorm.DB, imports []*types.TreeImport) ([]*types.TreeImport, error) {
	transaction := tx
	if transaction == nil {
		transaction = tir.db
	}
	if len(imports) == 0 {
		return []*types.TreeImport{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&imports).Error; err != nil {
		return nil, err
	}
	return imports, nil
}

func (tir *treeImportRepo) ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.TreeImport, error) {
	transaction := tx
	if transaction == nil {
		transaction = tir.db
	}
	var results []*types.TreeImport
	query := transaction.WithContext(ctx).
		Where("tree_id = ?", treeID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
