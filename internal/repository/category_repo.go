package repository

import (
	"context"
	"errors"

	"github.com/dasha/promptfolio/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository handles category and art-category association persistence.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository bound to db.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// UpsertByName finds a category by name or creates it, returning the stored
// row either way. Rerunning the seed must not duplicate rows.
func (r *CategoryRepository) UpsertByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = domain.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List retrieves all categories.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateAssociations links an art record to a set of categories.
// One row per (art, category); conflicts are ignored so a retried tagging
// step stays idempotent.
func (r *CategoryRepository) CreateAssociations(ctx context.Context, artID uint, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]domain.ArtCategory, len(categoryIDs))
	for i, categoryID := range categoryIDs {
		rows[i] = domain.ArtCategory{ArtID: artID, CategoryID: categoryID}
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// GetAssociatedCategoryIDs retrieves category IDs linked to an art record.
func (r *CategoryRepository) GetAssociatedCategoryIDs(ctx context.Context, artID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&domain.ArtCategory{}).
		Where("art_id = ?", artID).
		Pluck("category_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// TopCategories aggregates association counts per category, ordered by count
// descending, capped at limit. Ties fall back to the store's natural order.
func (r *CategoryRepository) TopCategories(ctx context.Context, limit int) ([]domain.CategoryCount, error) {
	var counts []domain.CategoryCount
	if err := r.db.WithContext(ctx).
		Model(&domain.ArtCategory{}).
		Select("categories.name AS name, COUNT(*) AS count").
		Joins("JOIN categories ON categories.id = arts_categories.category_id").
		Group("categories.id, categories.name").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
