package supabase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

// ============================================================
// Pipeline deals - sales board table
// ============================================================

func (c *Client) ListDeals(ctx context.Context) ([]domain.PipelineDeal, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListDeals")
	defer span.End()

	body, err := c.doGet(ctx, "pipeline_deals?order=created_at.desc")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.PipelineDeal](body, "pipeline_deals")
}

func (c *Client) CreateDeal(ctx context.Context, req *domain.DealRequest) (*domain.PipelineDeal, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateDeal")
	defer span.End()

	stage := req.Stage
	if stage == "" {
		stage = string(domain.StageLead)
	}

	row := map[string]any{
		"company_name": req.CompanyName,
		"contact_name": req.ContactName,
		"email":        req.Email,
		"value":        req.Value,
		"stage":        stage,
		"probability":  req.Probability,
		"notes":        req.Notes,
	}

	body, err := c.doPost(ctx, "pipeline_deals", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.PipelineDeal](body, "pipeline_deal")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from pipeline_deals insert")
	}
	return created, nil
}

func (c *Client) UpdateDeal(ctx context.Context, dealID string, updates map[string]any) (*domain.PipelineDeal, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateDeal")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("pipeline_deals?id=eq.%s", url.QueryEscape(dealID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.PipelineDeal](body, "pipeline_deal")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "pipeline_deal", ID: dealID}
	}
	return row, nil
}

func (c *Client) DeleteDeal(ctx context.Context, dealID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteDeal")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("pipeline_deals?id=eq.%s", url.QueryEscape(dealID)))
}
