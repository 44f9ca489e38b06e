package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type PersonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, persons []*types.Person) ([]*types.Person, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, personIDs []uuid.UUID) ([]*types.Person, error)
	ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.Person, error)
}

type personRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	return &personRepo{db: db, log: baseLog.With("repo", "PersonRepo")}
}

func (pr *personRepo) Create(ctx context.Context, tx *gorm.DB, persons []*types.Person) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(persons) == 0 {
		return []*types.Person{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (pr *personRepo) GetByIDs(ctx context.Context, tx *gorm.DB, personIDs []uuid.UUID) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Person
	if len(personIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", personIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Person
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
