package supabase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

// ============================================================
// L10 meetings and their sub-resources
// ============================================================

func (c *Client) ListMeetings(ctx context.Context) ([]domain.MeetingL10, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListMeetings")
	defer span.End()

	body, err := c.doGet(ctx, "meetings_l10?order=date.desc")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.MeetingL10](body, "meetings")
}

func (c *Client) GetMeeting(ctx context.Context, meetingID string) (*domain.MeetingL10, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetMeeting")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("meetings_l10?id=eq.%s&limit=1", url.QueryEscape(meetingID)))
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.MeetingL10](body, "meeting")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "meeting", ID: meetingID}
	}
	return row, nil
}

func (c *Client) CreateMeeting(ctx context.Context, req *domain.MeetingRequest) (*domain.MeetingL10, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateMeeting")
	defer span.End()

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 90
	}

	row := map[string]any{
		"title":            req.Title,
		"date":             nullable(req.Date),
		"duration_minutes": duration,
		"score":            0,
		"status":           string(domain.MeetingScheduled),
		"notes":            req.Notes,
	}

	body, err := c.doPost(ctx, "meetings_l10", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.MeetingL10](body, "meeting")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from meetings_l10 insert")
	}
	return created, nil
}

func (c *Client) UpdateMeeting(ctx context.Context, meetingID string, updates map[string]any) (*domain.MeetingL10, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateMeeting")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("meetings_l10?id=eq.%s", url.QueryEscape(meetingID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.MeetingL10](body, "meeting")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "meeting", ID: meetingID}
	}
	return row, nil
}

// --- Issues ---

func (c *Client) ListIssues(ctx context.Context, meetingID string) ([]domain.MeetingIssue, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListIssues")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("meeting_issues?meeting_id=eq.%s&order=order_index.asc", url.QueryEscape(meetingID)))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.MeetingIssue](body, "meeting_issues")
}

func (c *Client) CreateIssue(ctx context.Context, issue *domain.MeetingIssue) (*domain.MeetingIssue, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateIssue")
	defer span.End()

	priority := issue.Priority
	if priority == "" {
		priority = "medium"
	}

	row := map[string]any{
		"meeting_id":  issue.MeetingID,
		"title":       issue.Title,
		"description": issue.Description,
		"owner_id":    nullable(issue.OwnerID),
		"priority":    priority,
		"status":      "open",
		"order_index": issue.OrderIndex,
	}

	body, err := c.doPost(ctx, "meeting_issues", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.MeetingIssue](body, "meeting_issue")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from meeting_issues insert")
	}
	return created, nil
}

func (c *Client) UpdateIssue(ctx context.Context, issueID string, updates map[string]any) (*domain.MeetingIssue, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateIssue")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("meeting_issues?id=eq.%s", url.QueryEscape(issueID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.MeetingIssue](body, "meeting_issue")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "meeting_issue", ID: issueID}
	}
	return row, nil
}

// --- Headlines ---

func (c *Client) ListHeadlines(ctx context.Context, meetingID string) ([]domain.MeetingHeadline, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListHeadlines")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("meeting_headlines?meeting_id=eq.%s&order=created_at.asc", url.QueryEscape(meetingID)))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.MeetingHeadline](body, "meeting_headlines")
}

func (c *Client) CreateHeadline(ctx context.Context, h *domain.MeetingHeadline) (*domain.MeetingHeadline, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateHeadline")
	defer span.End()

	htype := h.Type
	if htype == "" {
		htype = "customer"
	}

	row := map[string]any{
		"meeting_id": h.MeetingID,
		"title":      h.Title,
		"type":       htype,
		"owner_id":   nullable(h.OwnerID),
	}

	body, err := c.doPost(ctx, "meeting_headlines", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.MeetingHeadline](body, "meeting_headline")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from meeting_headlines insert")
	}
	return created, nil
}

// --- Todos ---

func (c *Client) ListTodos(ctx context.Context, meetingID string) ([]domain.MeetingTodo, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTodos")
	defer span.End()

	path := "meeting_todos?order=due_date.asc"
	if meetingID != "" {
		path = fmt.Sprintf("meeting_todos?meeting_id=eq.%s&order=due_date.asc", url.QueryEscape(meetingID))
	}
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.MeetingTodo](body, "meeting_todos")
}

func (c *Client) CreateTodo(ctx context.Context, todo *domain.MeetingTodo) (*domain.MeetingTodo, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateTodo")
	defer span.End()

	row := map[string]any{
		"meeting_id": nullable(todo.MeetingID),
		"title":      todo.Title,
		"owner_id":   nullable(todo.OwnerID),
		"completed":  false,
		"due_date":   nullable(todo.DueDate),
	}

	body, err := c.doPost(ctx, "meeting_todos", row)
	if err != nil {
		return nil, err
	}

	created, err := decodeFirst[domain.MeetingTodo](body, "meeting_todo")
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("no result from meeting_todos insert")
	}
	return created, nil
}

func (c *Client) UpdateTodo(ctx context.Context, todoID string, updates map[string]any) (*domain.MeetingTodo, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateTodo")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("meeting_todos?id=eq.%s", url.QueryEscape(todoID)), updates)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.MeetingTodo](body, "meeting_todo")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "meeting_todo", ID: todoID}
	}
	return row, nil
}
