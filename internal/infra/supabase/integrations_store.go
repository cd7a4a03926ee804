package supabase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Integrations - implements port.CredentialStore
// ============================================================

// SaveCredentials stores one credential blob per provider via an atomic
// upsert keyed on the provider column. Two concurrent saves for the same
// provider resolve server-side; the table never grows a duplicate row.
func (c *Client) SaveCredentials(ctx context.Context, provider domain.Provider, creds map[string]string) (*domain.Integration, error) {
	ctx, span := tracer.Start(ctx, "Supabase.SaveCredentials")
	defer span.End()
	span.SetAttributes(attribute.String("provider", string(provider)))

	row := map[string]any{
		"provider":    string(provider),
		"credentials": creds,
		"status":      "active",
		"updated_at":  time.Now().Format(time.RFC3339),
	}

	body, err := c.doUpsert(ctx, "integrations", "provider", row)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/integrations", Err: err}
	}

	stored, err := decodeFirst[domain.Integration](body, "integration")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/integrations", Err: err}
	}
	if stored == nil {
		return nil, &domain.ErrExternalService{
			Service: "supabase/integrations",
			Err:     fmt.Errorf("no representation from integrations upsert"),
		}
	}
	return stored, nil
}

// GetCredentials looks up the stored row for provider. A missing row is
// ErrNotConfigured; a transport or store failure is ErrExternalService.
// Callers can and should tell the two apart.
func (c *Client) GetCredentials(ctx context.Context, provider domain.Provider) (*domain.Integration, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetCredentials")
	defer span.End()
	span.SetAttributes(attribute.String("provider", string(provider)))

	var integration *domain.Integration

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("integrations?provider=eq.%s&limit=1", url.QueryEscape(string(provider)))
			body, err := c.doGet(ctx, path)
			if err != nil {
				return err
			}
			row, err := decodeFirst[domain.Integration](body, "integration")
			if err != nil {
				return err
			}
			integration = row
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/integrations", Err: err}
	}
	if integration == nil {
		return nil, &domain.ErrNotConfigured{Provider: string(provider)}
	}
	return integration, nil
}

// ListIntegrations returns all stored provider rows with their status.
func (c *Client) ListIntegrations(ctx context.Context) ([]domain.Integration, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListIntegrations")
	defer span.End()

	body, err := c.doGet(ctx, "integrations?order=provider.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/integrations", Err: err}
	}
	return decodeList[domain.Integration](body, "integrations")
}
