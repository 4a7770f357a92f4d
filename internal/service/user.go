package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dasha/promptfolio/internal/domain"
	"github.com/dasha/promptfolio/internal/repository"
)

// UserService handles local accounts and social relations.
type UserService struct {
	users        *repository.UserRepository
	interactions *repository.InteractionRepository
}

// NewUserService creates a new user service.
func NewUserService(
	users *repository.UserRepository,
	interactions *repository.InteractionRepository,
) *UserService {
	return &UserService{
		users:        users,
		interactions: interactions,
	}
}

// CreateUserInput carries a local account registration.
type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Create registers a local account.
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Username: input.Username,
		Password: input.Password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Like records userID liking artID.
func (s *UserService) Like(ctx context.Context, userID, artID uint) error {
	return s.interactions.Like(ctx, userID, artID)
}

// Unlike removes a like.
func (s *UserService) Unlike(ctx context.Context, userID, artID uint) error {
	return s.interactions.Unlike(ctx, userID, artID)
}

// Follow records followerID following followeeID.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return fmt.Errorf("cannot follow yourself")
	}
	return s.interactions.Follow(ctx, followerID, followeeID)
}

// Unfollow removes a follow.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.interactions.Unfollow(ctx, followerID, followeeID)
}

// RecentSearches returns a user's latest search queries, newest first.
func (s *UserService) RecentSearches(ctx context.Context, userID uint, limit int) ([]domain.SearchHistory, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.interactions.RecentSearches(ctx, userID, limit)
}
