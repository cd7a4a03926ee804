// Package supabase provides a client for Supabase (PostgREST + GoTrue).
// It is the remote data service behind every feature page: profiles,
// clients, tasks, deals, approvals, SOPs, meetings and the integrations
// credential table.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("supabase")

// Client wraps HTTP calls to the Supabase PostgREST and GoTrue APIs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	serviceKey string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a Supabase client. serviceKey may equal apiKey when no
// privileged key is configured; RLS then applies to every call.
func NewClient(httpClient *http.Client, baseURL, apiKey, serviceKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	if serviceKey == "" {
		serviceKey = apiKey
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		serviceKey: serviceKey,
		cb:         cb,
		cfg:        cfg,
		logger:     logger,
	}
}

func (c *Client) setHeaders(req *http.Request, prefer string) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.serviceKey))
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
}

// doGet executes an authenticated GET against PostgREST.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: non-2xx response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("supabase returned status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("supabase: GET OK", zap.String("path", path), zap.Int("status", resp.StatusCode))
	return body, nil
}

// doCount issues a HEAD with an exact-count preference and reads the row
// count off the Content-Range header, so counting transfers no rows.
func (c *Client) doCount(ctx context.Context, path string) (int64, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	c.setHeaders(req, "count=exact")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: HEAD request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return 0, err
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("supabase HEAD %s returned %d", path, resp.StatusCode)
	}

	// PostgREST answers "0-24/3573", or "*/0" for an empty table.
	cr := resp.Header.Get("Content-Range")
	idx := strings.LastIndex(cr, "/")
	if idx < 0 || idx == len(cr)-1 {
		return 0, fmt.Errorf("supabase HEAD %s: unexpected Content-Range %q", path, cr)
	}
	count, err := strconv.ParseInt(cr[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("supabase HEAD %s: parse Content-Range %q: %w", path, cr, err)
	}
	return count, nil
}

// doPost inserts a row and returns the representation.
func (c *Client) doPost(ctx context.Context, table string, data map[string]any) ([]byte, error) {
	return c.doWrite(ctx, http.MethodPost, table, data, "return=representation")
}

// doUpsert inserts-or-updates keyed on conflictColumn, atomically on the
// server side. This is what keeps the integrations table at one row per
// provider even under concurrent saves.
func (c *Client) doUpsert(ctx context.Context, table, conflictColumn string, data map[string]any) ([]byte, error) {
	path := fmt.Sprintf("%s?on_conflict=%s", table, conflictColumn)
	return c.doWrite(ctx, http.MethodPost, path, data, "resolution=merge-duplicates,return=representation")
}

func (c *Client) doWrite(ctx context.Context, method, path string, data map[string]any, prefer string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, prefer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: write request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: write non-2xx",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("supabase %s %s returned %d: %s", method, path, resp.StatusCode, string(body))
	}

	c.logger.Debug("supabase: write OK", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))
	return body, nil
}

// doPatch updates rows matched by the path filter and returns the
// representation of the updated rows.
func (c *Client) doPatch(ctx context.Context, path string, data map[string]any) ([]byte, error) {
	return c.doWrite(ctx, http.MethodPatch, path, data, "return=representation")
}

// doDelete removes rows matched by the path filter.
func (c *Client) doDelete(ctx context.Context, path string) error {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: DELETE request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("supabase: DELETE non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return fmt.Errorf("supabase DELETE returned %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("supabase: DELETE OK", zap.String("path", path))
	return nil
}

// decodeFirst unmarshals a PostgREST array body and returns its first row.
func decodeFirst[T any](body []byte, resource string) (*T, error) {
	if body == nil || string(body) == "[]" {
		return nil, nil
	}
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// decodeList unmarshals a PostgREST array body, mapping nil to empty.
func decodeList[T any](body []byte, resource string) ([]T, error) {
	if body == nil || string(body) == "[]" {
		return []T{}, nil
	}
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	return rows, nil
}
