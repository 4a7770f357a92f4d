package repository

import (
	"context"
	"fmt"

	"github.com/dasha/promptfolio/internal/domain"
	"gorm.io/gorm"
)

// ArtRepository handles art record persistence.
type ArtRepository struct {
	db *gorm.DB
}

// NewArtRepository creates a new ArtRepository bound to db.
func NewArtRepository(db *gorm.DB) *ArtRepository {
	return &ArtRepository{db: db}
}

// Create inserts a new art record and populates its assigned ID.
func (r *ArtRepository) Create(ctx context.Context, art *domain.Art) error {
	return r.db.WithContext(ctx).Create(art).Error
}

// GetByID retrieves an art record by its ID.
func (r *ArtRepository) GetByID(ctx context.Context, id uint) (*domain.Art, error) {
	var art domain.Art
	if err := r.db.WithContext(ctx).First(&art, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &art, nil
}

// GetByIDs retrieves art records for a set of IDs.
// The result comes back in storage order, not input order; callers that need
// rank order must reorder against the requesting sequence.
func (r *ArtRepository) GetByIDs(ctx context.Context, ids []uint) ([]domain.Art, error) {
	if len(ids) == 0 {
		return []domain.Art{}, nil
	}
	var arts []domain.Art
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&arts).Error; err != nil {
		return nil, fmt.Errorf("failed to get arts by IDs: %w", err)
	}
	return arts, nil
}

// List retrieves art records with pagination in storage order.
func (r *ArtRepository) List(ctx context.Context, offset, limit int) ([]domain.Art, error) {
	var arts []domain.Art
	if err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Find(&arts).Error; err != nil {
		return nil, err
	}
	return arts, nil
}

// Count returns the total number of art records.
func (r *ArtRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Art{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByOwner retrieves art records owned by a user with pagination.
func (r *ArtRepository) ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]domain.Art, error) {
	var arts []domain.Art
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Offset(offset).
		Limit(limit).
		Find(&arts).Error; err != nil {
		return nil, err
	}
	return arts, nil
}
