package supabase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

func (c *Client) ListApprovals(ctx context.Context, status, clientID string) ([]domain.Approval, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListApprovals")
	defer span.End()

	filters := []string{"order=created_at.desc"}
	if status != "" {
		filters = append(filters, "status=eq."+url.QueryEscape(status))
	}
	if clientID != "" {
		filters = append(filters, "client_id=eq."+url.QueryEscape(clientID))
	}

	body, err := c.doGet(ctx, "approvals?"+strings.Join(filters, "&"))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Approval](body, "approvals")
}

func (c *Client) GetApproval(ctx context.Context, approvalID string) (*domain.Approval, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetApproval")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("approvals?id=eq.%s&limit=1", url.QueryEscape(approvalID)))
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Approval](body, "approval")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "approval", ID: approvalID}
	}
	return row, nil
}

// CreateApproval records a submitted deliverable. New approvals always start
// pending regardless of what the caller sends.
func (c *Client) CreateApproval(ctx context.Context, submittedBy string, req *domain.ApprovalRequest) (*domain.Approval, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateApproval")
	defer span.End()

	row := map[string]any{
		"task_id":      req.TaskID,
		"client_id":    nullable(req.ClientID),
		"file_url":     req.FileURL,
		"file_name":    req.FileName,
		"status":       string(domain.ApprovalPending),
		"submitted_by": submittedBy,
	}

	body, err := c.doPost(ctx, "approvals", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.Approval](body, "approval")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from approvals insert")
	}
	return created, nil
}

func (c *Client) UpdateApproval(ctx context.Context, approvalID string, updates map[string]any) (*domain.Approval, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateApproval")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("approvals?id=eq.%s", url.QueryEscape(approvalID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Approval](body, "approval")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "approval", ID: approvalID}
	}
	return row, nil
}
