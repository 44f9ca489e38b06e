package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type CitationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, citations []*types.Citation) ([]*types.Citation, error)
	ListBySourceIDs(ctx context.Context, tx *gorm.DB, sourceIDs []uuid.UUID) ([]*types.Citation, error)
}

type citationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCitationRepo(db *gorm.DB, baseLog *logger.Logger) CitationRepo {
	return &citationRepo{db: db, log: baseLog.With("repo", "CitationRepo")}
}

func (cr *citationRepo) Create(ctx context.Context, tx *gorm.DB, citations []*types.Citation) ([]*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(citations) == 0 {
		return []*types.Citation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&citations).Error; err != nil {
		return nil, err
	}
	return citations, nil
}

func (cr *citationRepo) ListBySourceIDs(ctx context.Context, tx *gorm.DB, sourceIDs []uuid.UUID) ([]*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Citation
	if len(sourceIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("source_id IN ?", sourceIDs).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
