package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Profiles - implements port.ProfileStore
// ============================================================

// GetProfile fetches one profiles row by auth account id. The profile load
// sits on the login path, so it gets the full breaker+retry treatment.
func (c *Client) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var profile *domain.Profile

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("profiles?id=eq.%s&limit=1", url.QueryEscape(userID))
			body, err := c.doGet(ctx, path)
			if err != nil {
				return err
			}

			// A missing row is a successful lookup, not a store failure;
			// it must not burn retries or count against the breaker.
			p, err := decodeFirst[domain.Profile](body, "profile")
			if err != nil {
				return err
			}
			profile = p
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/profiles", Err: err}
	}
	if profile == nil {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: userID}
	}

	return profile, nil
}

// ListProfiles returns every team member, newest first.
func (c *Client) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListProfiles")
	defer span.End()

	body, err := c.doGet(ctx, "profiles?order=created_at.desc")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Profile](body, "profiles")
}

// GetProfileByEmail resolves a profile by email. Used by the operator CLI,
// which knows emails, not auth account ids.
func (c *Client) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProfileByEmail")
	defer span.End()

	path := fmt.Sprintf("profiles?email=eq.%s&limit=1", url.QueryEscape(email))
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	p, err := decodeFirst[domain.Profile](body, "profile")
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: email}
	}
	return p, nil
}

// UpdateRole changes a team member's role. Admin-only at the service layer.
func (c *Client) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateRole")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID), attribute.String("role", string(role)))

	patch := map[string]any{
		"role":       string(role),
		"updated_at": time.Now().Format(time.RFC3339),
	}
	body, err := c.doPatch(ctx, fmt.Sprintf("profiles?id=eq.%s", url.QueryEscape(userID)), patch)
	if err != nil {
		return nil, err
	}

	p, err := decodeFirst[domain.Profile](body, "profile")
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: userID}
	}
	return p, nil
}

// GetDevLoginHash reads the bcrypt hash for DEV_AUTH mode.
func (c *Client) GetDevLoginHash(ctx context.Context, email string) (userID, hash string, err error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetDevLoginHash")
	defer span.End()

	path := fmt.Sprintf("dev_logins?email=eq.%s&limit=1", url.QueryEscape(email))
	body, errGet := c.doGet(ctx, path)
	if errGet != nil {
		return "", "", errGet
	}

	type devLogin struct {
		UserID       string `json:"user_id"`
		PasswordHash string `json:"password_hash"`
	}
	row, errDec := decodeFirst[devLogin](body, "dev_login")
	if errDec != nil {
		return "", "", errDec
	}
	if row == nil {
		return "", "", &domain.ErrNotFound{Resource: "dev_login", ID: email}
	}
	return row.UserID, row.PasswordHash, nil
}

// Ping issues a cheap probe used by /healthz.
func (c *Client) Ping(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/rest/v1/profiles?limit=1", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("supabase returned status %d", resp.StatusCode)
	}
	return nil
}
