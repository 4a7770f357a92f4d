package repository

import (
	"context"
	"errors"

	"github.com/dasha/promptfolio/internal/domain"
	"gorm.io/gorm"
)

// UserRepository handles user persistence.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository bound to db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user record.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertFederated creates or refreshes a user record keyed by email for a
// federated sign-in. An existing row keeps its local fields; only the
// provider id, picture, and username are refreshed.
func (r *UserRepository) UpsertFederated(ctx context.Context, user *domain.User) (*domain.User, error) {
	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err := r.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	existing.GoogleID = user.GoogleID
	existing.Picture = user.Picture
	if existing.Username == "" {
		existing.Username = user.Username
	}
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
