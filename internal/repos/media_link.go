package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type MediaLinkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, links []*types.MediaLink) ([]*types.MediaLink, error)
	ListByMediaIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) ([]*types.MediaLink, error)
}

type mediaLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaLinkRepo(db *gorm.DB, baseLog *logger.Logger) MediaLinkRepo {
	return &mediaLinkRepo{db: db, log: baseLog.With("repo", "MediaLinkRepo")}
}

func (mlr *mediaLinkRepo) Create(ctx context.Context, tx *gorm.DB, links []*types.MediaLink) ([]*types.MediaLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = mlr.db
	}
	if len(links) == 0 {
		return []*types.MediaLink{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (mlr *mediaLinkRepo) ListByMediaIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) ([]*types.MediaLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = mlr.db
	}
	var results []*types.MediaLink
	if len(mediaIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("media_id IN ?", mediaIDs).
		Order("sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
