package supabase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

// ============================================================
// Rocks & scorecard - EOS operations tables
// ============================================================

func (c *Client) ListRocks(ctx context.Context, quarter string) ([]domain.Rock, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListRocks")
	defer span.End()

	path := "rocks?order=due_date.asc"
	if quarter != "" {
		path = fmt.Sprintf("rocks?quarter=eq.%s&order=due_date.asc", url.QueryEscape(quarter))
	}
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Rock](body, "rocks")
}

func (c *Client) CreateRock(ctx context.Context, req *domain.RockRequest) (*domain.Rock, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateRock")
	defer span.End()

	status := req.Status
	if status == "" {
		status = "on_track"
	}

	row := map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"owner_id":    nullable(req.OwnerID),
		"progress":    req.Progress,
		"status":      status,
		"quarter":     req.Quarter,
		"due_date":    nullable(req.DueDate),
	}

	body, err := c.doPost(ctx, "rocks", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.Rock](body, "rock")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from rocks insert")
	}
	return created, nil
}

func (c *Client) UpdateRock(ctx context.Context, rockID string, updates map[string]any) (*domain.Rock, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateRock")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("rocks?id=eq.%s", url.QueryEscape(rockID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Rock](body, "rock")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "rock", ID: rockID}
	}
	return row, nil
}

func (c *Client) DeleteRock(ctx context.Context, rockID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteRock")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("rocks?id=eq.%s", url.QueryEscape(rockID)))
}

// --- Scorecard ---

func (c *Client) ListScorecard(ctx context.Context, week string) ([]domain.ScorecardMetric, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListScorecard")
	defer span.End()

	path := "scorecard_metrics?order=week.desc,name.asc"
	if week != "" {
		path = fmt.Sprintf("scorecard_metrics?week=eq.%s&order=name.asc", url.QueryEscape(week))
	}
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.ScorecardMetric](body, "scorecard_metrics")
}

func (c *Client) CreateScorecardMetric(ctx context.Context, req *domain.ScorecardMetricRequest) (*domain.ScorecardMetric, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateScorecardMetric")
	defer span.End()

	row := map[string]any{
		"name":     req.Name,
		"owner_id": nullable(req.OwnerID),
		"target":   req.Target,
		"actual":   req.Actual,
		"unit":     req.Unit,
		"week":     req.Week,
		"on_track": req.Actual >= req.Target,
	}

	body, err := c.doPost(ctx, "scorecard_metrics", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.ScorecardMetric](body, "scorecard_metric")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from scorecard_metrics insert")
	}
	return created, nil
}

func (c *Client) UpdateScorecardMetric(ctx context.Context, metricID string, updates map[string]any) (*domain.ScorecardMetric, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateScorecardMetric")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("scorecard_metrics?id=eq.%s", url.QueryEscape(metricID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.ScorecardMetric](body, "scorecard_metric")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "scorecard_metric", ID: metricID}
	}
	return row, nil
}
