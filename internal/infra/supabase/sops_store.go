package supabase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

// ListSOPs applies the PARA/tag/search filters as PostgREST query params.
// Tag filtering uses the array contains operator, search a case-insensitive
// pattern match on the title.
func (c *Client) ListSOPs(ctx context.Context, filter domain.SOPFilter) ([]domain.SOP, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListSOPs")
	defer span.End()

	filters := []string{"order=updated_at.desc"}
	if filter.Category != "" {
		filters = append(filters, "category=eq."+url.QueryEscape(filter.Category))
	}
	if filter.Tag != "" {
		filters = append(filters, "tags=cs."+url.QueryEscape("{"+filter.Tag+"}"))
	}
	if filter.Search != "" {
		filters = append(filters, "title=ilike."+url.QueryEscape("*"+filter.Search+"*"))
	}

	body, err := c.doGet(ctx, "sops?"+strings.Join(filters, "&"))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.SOP](body, "sops")
}

func (c *Client) GetSOP(ctx context.Context, sopID string) (*domain.SOP, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetSOP")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("sops?id=eq.%s&limit=1", url.QueryEscape(sopID)))
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.SOP](body, "sop")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "sop", ID: sopID}
	}
	return row, nil
}

func (c *Client) CreateSOP(ctx context.Context, createdBy string, req *domain.SOPRequest) (*domain.SOP, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateSOP")
	defer span.End()

	category := req.Category
	if category == "" {
		category = string(domain.ParaResources)
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	row := map[string]any{
		"title":      req.Title,
		"content":    req.Content,
		"category":   category,
		"client_id":  nullable(req.ClientID),
		"tags":       tags,
		"created_by": createdBy,
	}

	body, err := c.doPost(ctx, "sops", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.SOP](body, "sop")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from sops insert")
	}
	return created, nil
}

func (c *Client) UpdateSOP(ctx context.Context, sopID string, updates map[string]any) (*domain.SOP, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateSOP")
	defer span.End()

	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	body, err := c.doPatch(ctx, fmt.Sprintf("sops?id=eq.%s", url.QueryEscape(sopID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.SOP](body, "sop")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "sop", ID: sopID}
	}
	return row, nil
}

func (c *Client) DeleteSOP(ctx context.Context, sopID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteSOP")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("sops?id=eq.%s", url.QueryEscape(sopID)))
}
