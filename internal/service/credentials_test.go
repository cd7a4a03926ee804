package service_test

import (
	"context"
	"testing"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"go.uber.org/zap"
)

type mockCredentialStore struct {
	saved map[domain.Provider]map[string]string
	err   error
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{saved: map[domain.Provider]map[string]string{}}
}

func (m *mockCredentialStore) SaveCredentials(_ context.Context, provider domain.Provider, creds map[string]string) (*domain.Integration, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved[provider] = creds
	return &domain.Integration{ID: "integ-1", Provider: provider, Credentials: creds, Status: "active"}, nil
}

func (m *mockCredentialStore) GetCredentials(_ context.Context, provider domain.Provider) (*domain.Integration, error) {
	if m.err != nil {
		return nil, m.err
	}
	creds, ok := m.saved[provider]
	if !ok {
		return nil, &domain.ErrNotConfigured{Provider: string(provider)}
	}
	return &domain.Integration{ID: "integ-1", Provider: provider, Credentials: creds, Status: "active"}, nil
}

func (m *mockCredentialStore) ListIntegrations(_ context.Context) ([]domain.Integration, error) {
	out := make([]domain.Integration, 0, len(m.saved))
	for provider, creds := range m.saved {
		out = append(out, domain.Integration{Provider: provider, Credentials: creds})
	}
	return out, nil
}

func TestSaveCredentials_UnknownProvider(t *testing.T) {
	svc := service.NewCredentialService(newMockCredentialStore(), zap.NewNop())

	_, err := svc.Save(context.Background(), "tiktok_ads", map[string]string{"token": "x"})
	if _, ok := err.(*domain.ErrValidation); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveCredentials_RequiredKeysPerProvider(t *testing.T) {
	svc := service.NewCredentialService(newMockCredentialStore(), zap.NewNop())

	tests := []struct {
		provider string
		creds    map[string]string
		valid    bool
	}{
		{"meta_ads", map[string]string{"access_token": "tok"}, false},
		{"meta_ads", map[string]string{"access_token": "tok", "ad_account_id": "123"}, true},
		{"clickup", map[string]string{}, false},
		{"clickup", map[string]string{"token": "pk_x"}, true},
		{"notion", map[string]string{"token": "secret_x"}, true},
		{"google_drive", map[string]string{"client_id": "x"}, false},
		{"google_drive", map[string]string{"api_key": "AIza"}, true},
	}

	for _, tt := range tests {
		_, err := svc.Save(context.Background(), tt.provider, tt.creds)
		if tt.valid && err != nil {
			t.Errorf("%s: expected save to succeed, got %v", tt.provider, err)
		}
		if !tt.valid {
			if _, ok := err.(*domain.ErrValidation); !ok {
				t.Errorf("%s: expected validation error, got %v", tt.provider, err)
			}
		}
	}
}

func TestGetCredentials_NotConfiguredVsStoreDown(t *testing.T) {
	store := newMockCredentialStore()
	svc := service.NewCredentialService(store, zap.NewNop())

	// Never connected: the caller must see ErrNotConfigured.
	_, err := svc.Get(context.Background(), "notion")
	if _, ok := err.(*domain.ErrNotConfigured); !ok {
		t.Fatalf("expected not-configured, got %v", err)
	}

	// Store unreachable: a different error, so the fetchers can tell mock
	// fallback (unconfigured) apart from a real outage.
	store.err = &domain.ErrExternalService{Service: "supabase/integrations"}
	_, err = svc.Get(context.Background(), "notion")
	if _, ok := err.(*domain.ErrExternalService); !ok {
		t.Fatalf("expected external-service error, got %v", err)
	}
}

func TestSaveCredentials_OverwritesPreviousBlob(t *testing.T) {
	store := newMockCredentialStore()
	svc := service.NewCredentialService(store, zap.NewNop())

	if _, err := svc.Save(context.Background(), "clickup", map[string]string{"token": "pk_old"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(context.Background(), "clickup", map[string]string{"token": "pk_new"}); err != nil {
		t.Fatal(err)
	}

	integ, err := svc.Get(context.Background(), "clickup")
	if err != nil {
		t.Fatal(err)
	}
	if integ.Credentials["token"] != "pk_new" {
		t.Errorf("expected last writer to win, got %q", integ.Credentials["token"])
	}
}
