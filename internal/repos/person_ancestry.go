package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type PersonAncestryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PersonAncestry) ([]*types.PersonAncestry, error)
	ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.PersonAncestry, error)
	DeleteByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID) error
}

type personAncestryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonAncestryRepo(db *gorm.DB, baseLog *logger.Logger) PersonAncestryRepo {
	return &personAncestryRepo{db: db, log: baseLog.With("repo", "PersonAncestryRepo")}
}

func (par *personAncestryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PersonAncestry) ([]*types.PersonAncestry, error) {
	transaction := tx
	if transaction == nil {
		transaction = par.db
	}
	if len(rows) == 0 {
		return []*types.PersonAncestry{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (par *personAncestryRepo) ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.PersonAncestry, error) {
	transaction := tx
	if transaction == nil {
		transaction = par.db
	}
	var results []*types.PersonAncestry
	query := transaction.WithContext(ctx).
		Where("tree_id = ?", treeID).
		Order("depth ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteByTreeID hard-deletes the closure rows; they are derived data
// and get rebuilt wholesale.
func (par *personAncestryRepo) DeleteByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = par.db
	}
	return transaction.WithContext(ctx).
		Where("tree_id = ?", treeID).
		Delete(&types.PersonAncestry{}).Error
}
