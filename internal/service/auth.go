package service

import (
	"context"
	"fmt"

	"github.com/dasha/promptfolio/internal/domain"
	"github.com/dasha/promptfolio/internal/logger"
	"github.com/go-resty/resty/v2"
)

// FederatedUserStore is the slice of the user repository the identity
// exchange needs.
type FederatedUserStore interface {
	UpsertFederated(ctx context.Context, user *domain.User) (*domain.User, error)
}

// ProviderError reports a rejection from the identity provider. The provider's
// status is surfaced verbatim to the caller.
type ProviderError struct {
	Status int
	Detail string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider rejected token: status %d: %s", e.Status, e.Detail)
}

// AuthConfig holds configuration for the identity exchange.
type AuthConfig struct {
	GoogleUserInfoURL string
}

// AuthService exchanges OAuth access tokens for verified profiles and keeps
// local user records in sync with them.
type AuthService struct {
	client      *resty.Client
	userInfoURL string
	users       FederatedUserStore
}

// NewAuthService creates a new auth service.
func NewAuthService(users FederatedUserStore, cfg *AuthConfig) *AuthService {
	url := "https://www.googleapis.com/oauth2/v2/userinfo"
	if cfg != nil && cfg.GoogleUserInfoURL != "" {
		url = cfg.GoogleUserInfoURL
	}
	return &AuthService{
		client:      resty.New(),
		userInfoURL: url,
		users:       users,
	}
}

// googleUserInfo is the profile shape returned by the Google userinfo endpoint.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ExchangeGoogleToken verifies an access token with Google and upserts the
// local user keyed by email. Existing rows keep local fields; the provider
// id and picture are refreshed on every sign-in.
func (s *AuthService) ExchangeGoogleToken(ctx context.Context, accessToken string) (*domain.User, error) {
	var info googleUserInfo
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&info).
		Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to reach identity provider: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &ProviderError{
			Status: resp.StatusCode(),
			Detail: string(resp.Body()),
		}
	}

	if info.Email == "" {
		return nil, fmt.Errorf("identity provider returned no email")
	}

	user, err := s.users.UpsertFederated(ctx, &domain.User{
		Email:    info.Email,
		Username: info.Name,
		GoogleID: info.ID,
		Picture:  info.Picture,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	logger.CtxInfo(ctx, "Federated sign-in: user_id=%d", user.ID)
	return user, nil
}
