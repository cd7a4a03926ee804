package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// GoTrue - implements port.Authenticator
// ============================================================

// gotrueError is the error envelope GoTrue returns on failed grants.
type gotrueError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func (e *gotrueError) message() string {
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.Error
}

// SignInWithPassword exchanges email+password for a token pair.
// Invalid credentials come back as ErrUnauthorized, never as a panic or a
// raw transport error.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "Supabase.SignInWithPassword")
	defer span.End()

	body := map[string]string{"email": email, "password": password}
	return c.tokenGrant(ctx, "password", body)
}

// RefreshSession rotates the token pair using a refresh token.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "Supabase.RefreshSession")
	defer span.End()

	body := map[string]string{"refresh_token": refreshToken}
	return c.tokenGrant(ctx, "refresh_token", body)
}

func (c *Client) tokenGrant(ctx context.Context, grantType string, payload map[string]string) (*domain.TokenPair, error) {
	url := fmt.Sprintf("%s/auth/v1/token?grant_type=%s", c.baseURL, grantType)
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("gotrue: token request failed",
			zap.String("grant_type", grantType),
			zap.Error(err),
		)
		return nil, &domain.ErrExternalService{Service: "supabase/auth", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/auth", Err: err}
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		var ge gotrueError
		_ = json.Unmarshal(raw, &ge)
		c.logger.Warn("gotrue: grant rejected",
			zap.String("grant_type", grantType),
			zap.Int("status", resp.StatusCode),
		)
		msg := ge.message()
		if msg == "" {
			msg = "Credenciais inválidas"
		}
		return nil, &domain.ErrUnauthorized{Message: msg}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("gotrue: non-2xx response",
			zap.String("grant_type", grantType),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(raw)),
		)
		return nil, &domain.ErrExternalService{
			Service: "supabase/auth",
			Err:     fmt.Errorf("gotrue returned status %d", resp.StatusCode),
		}
	}

	var pair domain.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, &domain.ErrExternalService{
			Service: "supabase/auth",
			Err:     fmt.Errorf("decode token response: %w", err),
		}
	}
	return &pair, nil
}

// SignOut invalidates the remote session for the given access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	ctx, span := tracer.Start(ctx, "Supabase.SignOut")
	defer span.End()

	url := fmt.Sprintf("%s/auth/v1/logout", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("gotrue: logout request failed", zap.Error(err))
		return &domain.ErrExternalService{Service: "supabase/auth", Err: err}
	}
	defer resp.Body.Close()

	// GoTrue answers 204 on success; an already-dead session is fine too.
	if resp.StatusCode >= 500 {
		return &domain.ErrExternalService{
			Service: "supabase/auth",
			Err:     fmt.Errorf("gotrue logout returned status %d", resp.StatusCode),
		}
	}
	return nil
}
