package repository

import (
	"context"
	"time"

	"github.com/dasha/promptfolio/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository handles likes, follows, and history rows.
// These are plain join/audit tables; the repository keeps them thin.
type InteractionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new InteractionRepository bound to db.
func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// Like records a user liking an art. Repeated likes are no-ops.
func (r *InteractionRepository) Like(ctx context.Context, userID, artID uint) error {
	row := domain.Like{UserID: userID, ArtID: artID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// Unlike removes a like row if present.
func (r *InteractionRepository) Unlike(ctx context.Context, userID, artID uint) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Like{}, "user_id = ? AND art_id = ?", userID, artID).Error
}

// CountLikes returns the number of likes for an art record.
func (r *InteractionRepository) CountLikes(ctx context.Context, artID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Like{}).Where("art_id = ?", artID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Follow records one user following another. Repeated follows are no-ops.
func (r *InteractionRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	row := domain.Follow{FollowerID: followerID, FolloweeID: followeeID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// Unfollow removes a follow row if present.
func (r *InteractionRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Follow{}, "follower_id = ? AND followee_id = ?", followerID, followeeID).Error
}

// AddSearchHistory records a search query for a user.
func (r *InteractionRepository) AddSearchHistory(ctx context.Context, userID uint, query string) error {
	row := domain.SearchHistory{UserID: userID, Query: query, Date: time.Now()}
	return r.db.WithContext(ctx).Create(&row).Error
}

// AddArtHistory records an art view for a user.
func (r *InteractionRepository) AddArtHistory(ctx context.Context, userID, artID uint) error {
	row := domain.ArtHistory{UserID: userID, ArtID: artID, Date: time.Now()}
	return r.db.WithContext(ctx).Create(&row).Error
}

// RecentSearches retrieves a user's latest search queries.
func (r *InteractionRepository) RecentSearches(ctx context.Context, userID uint, limit int) ([]domain.SearchHistory, error) {
	var rows []domain.SearchHistory
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
