package supabase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

// ============================================================
// Clients - CRM table, CRUD via PostgREST
// ============================================================

func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListClients")
	defer span.End()

	body, err := c.doGet(ctx, "clients?order=created_at.desc")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Client](body, "clients")
}

func (c *Client) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetClient")
	defer span.End()

	path := fmt.Sprintf("clients?id=eq.%s&limit=1", url.QueryEscape(clientID))
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Client](body, "client")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "client", ID: clientID}
	}
	return row, nil
}

func (c *Client) CreateClient(ctx context.Context, req *domain.ClientRequest) (*domain.Client, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateClient")
	defer span.End()

	status := req.Status
	if status == "" {
		status = string(domain.ClientNegotiation)
	}
	startDate := req.StartDate
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}

	row := map[string]any{
		"company_name":      req.CompanyName,
		"decision_maker":    req.DecisionMaker,
		"email":             req.Email,
		"phone":             req.Phone,
		"niche":             req.Niche,
		"status":            status,
		"contract_value":    req.ContractValue,
		"contract_duration": req.ContractDuration,
		"start_date":        startDate,
		"ltv":               req.ContractValue * float64(req.ContractDuration),
		"drive_link":        req.DriveLink,
		"notes":             req.Notes,
	}

	body, err := c.doPost(ctx, "clients", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.Client](body, "client")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from clients insert")
	}
	return created, nil
}

func (c *Client) UpdateClient(ctx context.Context, clientID string, updates map[string]any) (*domain.Client, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateClient")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("clients?id=eq.%s", url.QueryEscape(clientID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Client](body, "client")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "client", ID: clientID}
	}
	return row, nil
}

func (c *Client) DeleteClient(ctx context.Context, clientID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteClient")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("clients?id=eq.%s", url.QueryEscape(clientID)))
}

// --- Client files (portal) ---

func (c *Client) ListClientFiles(ctx context.Context, clientID string) ([]domain.ClientFile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListClientFiles")
	defer span.End()

	path := fmt.Sprintf("client_files?client_id=eq.%s&order=created_at.desc", url.QueryEscape(clientID))
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.ClientFile](body, "client_files")
}
