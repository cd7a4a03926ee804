package service

import (
	"context"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var credentialsTracer = otel.Tracer("service/credentials")

// CredentialService manages the one-row-per-provider integrations table.
type CredentialService struct {
	store  port.CredentialStore
	logger *zap.Logger
}

// NewCredentialService creates a credential service.
func NewCredentialService(store port.CredentialStore, logger *zap.Logger) *CredentialService {
	return &CredentialService{store: store, logger: logger}
}

// requiredKeys per provider. Extra keys are stored as-is; the blob is
// opaque past this check.
var requiredKeys = map[domain.Provider][]string{
	domain.ProviderClickUp:     {"token"},
	domain.ProviderNotion:      {"token"},
	domain.ProviderMetaAds:     {"access_token", "ad_account_id"},
	domain.ProviderGoogleDrive: {"api_key"},
}

// Save validates and stores the credential blob for provider. The store
// upserts keyed on the provider column, so concurrent saves still leave a
// single row with the last writer's blob.
func (s *CredentialService) Save(ctx context.Context, provider string, creds map[string]string) (*domain.Integration, error) {
	ctx, span := credentialsTracer.Start(ctx, "CredentialService.Save")
	defer span.End()
	span.SetAttributes(attribute.String("provider", provider))

	if !domain.ValidProvider(provider) {
		return nil, &domain.ErrValidation{Field: "provider", Message: "provedor desconhecido: " + provider}
	}
	p := domain.Provider(provider)

	for _, key := range requiredKeys[p] {
		if creds[key] == "" {
			return nil, &domain.ErrValidation{Field: key, Message: "campo obrigatório para " + provider}
		}
	}

	integ, err := s.store.SaveCredentials(ctx, p, creds)
	if err != nil {
		return nil, err
	}

	s.logger.Info("integration credentials saved", zap.String("provider", provider))
	return integ, nil
}

// Get returns the stored integration row for provider. ErrNotConfigured
// when it was never connected; ErrExternalService when the store is down.
func (s *CredentialService) Get(ctx context.Context, provider string) (*domain.Integration, error) {
	ctx, span := credentialsTracer.Start(ctx, "CredentialService.Get")
	defer span.End()

	if !domain.ValidProvider(provider) {
		return nil, &domain.ErrValidation{Field: "provider", Message: "provedor desconhecido: " + provider}
	}
	return s.store.GetCredentials(ctx, domain.Provider(provider))
}

// List returns every stored integration row.
func (s *CredentialService) List(ctx context.Context) ([]domain.Integration, error) {
	ctx, span := credentialsTracer.Start(ctx, "CredentialService.List")
	defer span.End()

	return s.store.ListIntegrations(ctx)
}
