package supabase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

// ============================================================
// Tasks - kanban board table
// ============================================================

func (c *Client) ListTasks(ctx context.Context, clientID string) ([]domain.Task, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTasks")
	defer span.End()

	path := "tasks?order=order_index.asc,created_at.desc"
	if clientID != "" {
		path = fmt.Sprintf("tasks?client_id=eq.%s&order=order_index.asc,created_at.desc", url.QueryEscape(clientID))
	}
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Task](body, "tasks")
}

func (c *Client) CreateTask(ctx context.Context, req *domain.TaskRequest) (*domain.Task, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateTask")
	defer span.End()

	status := req.Status
	if status == "" {
		status = string(domain.TaskTodo)
	}
	priority := req.Priority
	if priority == "" {
		priority = string(domain.PriorityMedium)
	}

	row := map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"client_id":   nullable(req.ClientID),
		"assignee_id": nullable(req.AssigneeID),
		"status":      status,
		"priority":    priority,
		"due_date":    nullable(req.DueDate),
		"tags":        req.Tags,
		"order_index": 0,
	}

	body, err := c.doPost(ctx, "tasks", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.Task](body, "task")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from tasks insert")
	}
	return created, nil
}

func (c *Client) UpdateTask(ctx context.Context, taskID string, updates map[string]any) (*domain.Task, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateTask")
	defer span.End()

	updates["updated_at"] = time.Now().Format(time.RFC3339)
	body, err := c.doPatch(ctx, fmt.Sprintf("tasks?id=eq.%s", url.QueryEscape(taskID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Task](body, "task")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "task", ID: taskID}
	}
	return row, nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTask")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("tasks?id=eq.%s", url.QueryEscape(taskID)))
}

// TasksVersion returns an opaque marker that changes whenever the board
// does: the newest updated_at plus the row count. The change-feed watcher
// polls it and broadcasts a reload hint to board subscribers on change.
func (c *Client) TasksVersion(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "Supabase.TasksVersion")
	defer span.End()

	body, err := c.doGet(ctx, "tasks?select=updated_at&order=updated_at.desc&limit=1")
	if err != nil {
		return "", err
	}

	type stamp struct {
		UpdatedAt string `json:"updated_at"`
	}
	latest, err := decodeFirst[stamp](body, "task stamp")
	if err != nil {
		return "", err
	}
	if latest == nil {
		return "empty", nil
	}

	count, err := c.doCount(ctx, "tasks?select=id")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d", latest.UpdatedAt, count), nil
}

// nullable maps "" to SQL NULL so empty optional references do not trip
// foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
