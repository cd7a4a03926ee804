package service

import (
	"context"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// L10 meetings - agenda as a data-entry workflow
// ============================================================

func (s *WorkspaceService) ListMeetings(ctx context.Context) ([]domain.MeetingL10, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListMeetings")
	defer span.End()

	return s.store.ListMeetings(ctx)
}

func (s *WorkspaceService) GetMeeting(ctx context.Context, meetingID string) (*domain.MeetingL10, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.GetMeeting")
	defer span.End()

	return s.store.GetMeeting(ctx, meetingID)
}

func (s *WorkspaceService) CreateMeeting(ctx context.Context, req *domain.MeetingRequest) (*domain.MeetingL10, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateMeeting")
	defer span.End()

	if req.Title == "" {
		return nil, &domain.ErrValidation{Field: "title", Message: "título é obrigatório"}
	}
	return s.store.CreateMeeting(ctx, req)
}

func (s *WorkspaceService) UpdateMeeting(ctx context.Context, meetingID string, updates map[string]any) (*domain.MeetingL10, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.UpdateMeeting")
	defer span.End()

	return s.store.UpdateMeeting(ctx, meetingID, updates)
}

// StartMeeting moves a scheduled meeting into progress.
func (s *WorkspaceService) StartMeeting(ctx context.Context, meetingID string) (*domain.MeetingL10, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.StartMeeting")
	defer span.End()

	meeting, err := s.store.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.Status == domain.MeetingCompleted {
		return nil, &domain.ErrConflict{Message: "reunião já concluída"}
	}
	return s.store.UpdateMeeting(ctx, meetingID, map[string]any{
		"status": string(domain.MeetingInProgress),
	})
}

// CompleteMeeting closes the meeting with the 1-10 rating everyone gives
// at the end of the agenda.
func (s *WorkspaceService) CompleteMeeting(ctx context.Context, meetingID string, score int, notes string) (*domain.MeetingL10, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CompleteMeeting")
	defer span.End()
	span.SetAttributes(attribute.Int("score", score))

	if score < 1 || score > 10 {
		return nil, &domain.ErrValidation{Field: "score", Message: "nota deve estar entre 1 e 10"}
	}

	updates := map[string]any{
		"status": string(domain.MeetingCompleted),
		"score":  score,
	}
	if notes != "" {
		updates["notes"] = notes
	}

	meeting, err := s.store.UpdateMeeting(ctx, meetingID, updates)
	if err != nil {
		return nil, err
	}
	s.logger.Info("meeting completed",
		zap.String("meeting_id", meetingID),
		zap.Int("score", score),
	)
	return meeting, nil
}

// --- Issues (IDS) ---

func (s *WorkspaceService) ListIssues(ctx context.Context, meetingID string) ([]domain.MeetingIssue, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListIssues")
	defer span.End()

	return s.store.ListIssues(ctx, meetingID)
}

func (s *WorkspaceService) CreateIssue(ctx context.Context, issue *domain.MeetingIssue) (*domain.MeetingIssue, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateIssue")
	defer span.End()

	if issue.Title == "" {
		return nil, &domain.ErrValidation{Field: "title", Message: "título é obrigatório"}
	}
	if issue.MeetingID == "" {
		return nil, &domain.ErrValidation{Field: "meeting_id", Message: "reunião é obrigatória"}
	}
	return s.store.CreateIssue(ctx, issue)
}

// SolveIssue marks an IDS item solved.
func (s *WorkspaceService) SolveIssue(ctx context.Context, issueID string) (*domain.MeetingIssue, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.SolveIssue")
	defer span.End()

	return s.store.UpdateIssue(ctx, issueID, map[string]any{"status": "solved"})
}

func (s *WorkspaceService) UpdateIssue(ctx context.Context, issueID string, updates map[string]any) (*domain.MeetingIssue, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.UpdateIssue")
	defer span.End()

	return s.store.UpdateIssue(ctx, issueID, updates)
}

// --- Headlines ---

func (s *WorkspaceService) ListHeadlines(ctx context.Context, meetingID string) ([]domain.MeetingHeadline, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListHeadlines")
	defer span.End()

	return s.store.ListHeadlines(ctx, meetingID)
}

func (s *WorkspaceService) CreateHeadline(ctx context.Context, h *domain.MeetingHeadline) (*domain.MeetingHeadline, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateHeadline")
	defer span.End()

	if h.Title == "" {
		return nil, &domain.ErrValidation{Field: "title", Message: "título é obrigatório"}
	}
	if h.MeetingID == "" {
		return nil, &domain.ErrValidation{Field: "meeting_id", Message: "reunião é obrigatória"}
	}
	return s.store.CreateHeadline(ctx, h)
}

// --- Todos ---

func (s *WorkspaceService) ListTodos(ctx context.Context, meetingID string) ([]domain.MeetingTodo, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListTodos")
	defer span.End()

	return s.store.ListTodos(ctx, meetingID)
}

func (s *WorkspaceService) CreateTodo(ctx context.Context, todo *domain.MeetingTodo) (*domain.MeetingTodo, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateTodo")
	defer span.End()

	if todo.Title == "" {
		return nil, &domain.ErrValidation{Field: "title", Message: "título é obrigatório"}
	}
	return s.store.CreateTodo(ctx, todo)
}

// CompleteTodo toggles a 7-day action item.
func (s *WorkspaceService) CompleteTodo(ctx context.Context, todoID string, completed bool) (*domain.MeetingTodo, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CompleteTodo")
	defer span.End()

	return s.store.UpdateTodo(ctx, todoID, map[string]any{"completed": completed})
}
