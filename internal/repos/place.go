package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type PlaceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, places []*types.Place) ([]*types.Place, error)
	ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.Place, error)
}

type placeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaceRepo(db *gorm.DB, baseLog *logger.Logger) PlaceRepo {
	return &placeRepo{db: db, log: baseLog.With("repo", "PlaceRepo")}
}

func (plr *placeRepo) Create(ctx context.Context, tx *gorm.DB, places []*types.Place) ([]*types.Place, error) {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}
	if len(places) == 0 {
		return []*types.Place{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func (plr *placeRepo) ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.Place, error) {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}
	var results []*types.Place
	query := transaction.WithContext(ctx).
		Where("tree_id = ?", treeID).
		Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
