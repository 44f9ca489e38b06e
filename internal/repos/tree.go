package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type TreeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, trees []*types.Tree) ([]*types.Tree, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, treeIDs []uuid.UUID) ([]*types.Tree, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Tree, error)
	Delete(ctx context.Context, tx *gorm.DB, treeID uuid.UUID) error
}

type treeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTreeRepo(db *gorm.DB, baseLog *logger.Logger) TreeRepo {
	return &treeRepo{db: db, log: baseLog.With("repo", "TreeRepo")}
}

func (tr *treeRepo) Create(ctx context.Context, tx *gorm.DB, trees []*types.Tree) ([]*types.Tree, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(trees) == 0 {
		return []*types.Tree{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&trees).Error; err != nil {
		return nil, err
	}
	return trees, nil
}

func (tr *treeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, treeIDs []uuid.UUID) ([]*types.Tree, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tree
	if len(treeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", treeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *treeRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Tree, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tree
	query := transaction.WithContext(ctx).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *treeRepo) Delete(ctx context.Context, tx *gorm.DB, treeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", treeID).
		Delete(&types.Tree{}).Error
}
