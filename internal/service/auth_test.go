package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dasha/promptfolio/internal/domain"
)

type fakeUserStore struct {
	upserted *domain.User
}

func (f *fakeUserStore) UpsertFederated(ctx context.Context, user *domain.User) (*domain.User, error) {
	f.upserted = user
	out := *user
	out.ID = 1
	return &out, nil
}

func TestExchangeGoogleToken(t *testing.T) {
	var gotAuth string
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"g-123","email":"dasha@example.com","name":"Dasha","picture":"https://example.com/p.jpg"}`))
	}))
	defer provider.Close()

	store := &fakeUserStore{}
	svc := NewAuthService(store, &AuthConfig{GoogleUserInfoURL: provider.URL})

	user, err := svc.ExchangeGoogleToken(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tok-abc" {
		t.Errorf("expected bearer token forwarded, got %q", gotAuth)
	}
	if user.ID != 1 {
		t.Errorf("expected persisted user id 1, got %d", user.ID)
	}
	if store.upserted == nil {
		t.Fatal("expected an upsert")
	}
	if store.upserted.Email != "dasha@example.com" {
		t.Errorf("unexpected email %q", store.upserted.Email)
	}
	if store.upserted.GoogleID != "g-123" {
		t.Errorf("unexpected google id %q", store.upserted.GoogleID)
	}
}

func TestExchangeGoogleTokenProviderRejection(t *testing.T) {
	testCases := []struct {
		name   string
		status int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "forbidden", status: http.StatusForbidden},
		{name: "rate limited", status: http.StatusTooManyRequests},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad token", tc.status)
			}))
			defer provider.Close()

			svc := NewAuthService(&fakeUserStore{}, &AuthConfig{GoogleUserInfoURL: provider.URL})

			_, err := svc.ExchangeGoogleToken(context.Background(), "bad")
			if err == nil {
				t.Fatal("expected error")
			}

			var providerErr *ProviderError
			if !errors.As(err, &providerErr) {
				t.Fatalf("expected ProviderError, got %T: %v", err, err)
			}
			if providerErr.Status != tc.status {
				t.Errorf("expected provider status %d passed through, got %d", tc.status, providerErr.Status)
			}
		})
	}
}

func TestExchangeGoogleTokenMissingEmail(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"g-123","name":"No Email"}`))
	}))
	defer provider.Close()

	store := &fakeUserStore{}
	svc := NewAuthService(store, &AuthConfig{GoogleUserInfoURL: provider.URL})

	if _, err := svc.ExchangeGoogleToken(context.Background(), "tok"); err == nil {
		t.Fatal("expected error for profile without email")
	}
	if store.upserted != nil {
		t.Error("no upsert expected when the profile is unusable")
	}
}
