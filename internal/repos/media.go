package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type MediaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, media []*types.Media) ([]*types.Media, error)
	ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.Media, error)
}

type mediaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaRepo(db *gorm.DB, baseLog *logger.Logger) MediaRepo {
	return &mediaRepo{db: db, log: baseLog.With("repo", "MediaRepo")}
}

func (mr *mediaRepo) Create(ctx context.Context, tx *gorm.DB, media []*types.Media) ([]*types.Media, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(media) == 0 {
		return []*types.Media{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (mr *mediaRepo) ListByTreeID(ctx context.Context, tx *gorm.DB, treeID uuid.UUID, limit, offset int) ([]*types.Media, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Media
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
