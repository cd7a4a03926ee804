package handler

import (
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Reuniões L10 - /v1/meetings
// ============================================================

func listMeetingsHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/meetings")
		defer span.End()

		meetings, err := svc.ListMeetings(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, meetings)
	}
}

func getMeetingHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/meetings/{meetingId}")
		defer span.End()

		meeting, err := svc.GetMeeting(ctx, chi.URLParam(r, "meetingId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, meeting)
	}
}

func createMeetingHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/meetings")
		defer span.End()

		var req domain.MeetingRequest
		if !decodeBody(w, r, &req) {
			return
		}

		meeting, err := svc.CreateMeeting(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, meeting)
	}
}

func updateMeetingHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/meetings/{meetingId}")
		defer span.End()

		updates, ok := decodeUpdates(w, r)
		if !ok {
			return
		}

		meeting, err := svc.UpdateMeeting(ctx, chi.URLParam(r, "meetingId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, meeting)
	}
}

func startMeetingHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/meetings/{meetingId}/start")
		defer span.End()

		meeting, err := svc.StartMeeting(ctx, chi.URLParam(r, "meetingId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, meeting)
	}
}

func completeMeetingHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/meetings/{meetingId}/complete")
		defer span.End()

		var req struct {
			Score int    `json:"score"`
			Notes string `json:"notes,omitempty"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		meeting, err := svc.CompleteMeeting(ctx, chi.URLParam(r, "meetingId"), req.Score, req.Notes)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, meeting)
	}
}

// --- Issues ---

func listIssuesHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/meetings/{meetingId}/issues")
		defer span.End()

		issues, err := svc.ListIssues(ctx, chi.URLParam(r, "meetingId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, issues)
	}
}

func createIssueHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/meetings/{meetingId}/issues")
		defer span.End()

		var issue domain.MeetingIssue
		if !decodeBody(w, r, &issue) {
			return
		}
		issue.MeetingID = chi.URLParam(r, "meetingId")

		created, err := svc.CreateIssue(ctx, &issue)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func solveIssueHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/meetings/issues/{issueId}/solve")
		defer span.End()

		issue, err := svc.SolveIssue(ctx, chi.URLParam(r, "issueId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, issue)
	}
}

func updateIssueHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/meetings/issues/{issueId}")
		defer span.End()

		updates, ok := decodeUpdates(w, r)
		if !ok {
			return
		}

		issue, err := svc.UpdateIssue(ctx, chi.URLParam(r, "issueId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, issue)
	}
}

// --- Headlines ---

func listHeadlinesHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/meetings/{meetingId}/headlines")
		defer span.End()

		headlines, err := svc.ListHeadlines(ctx, chi.URLParam(r, "meetingId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, headlines)
	}
}

func createHeadlineHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/meetings/{meetingId}/headlines")
		defer span.End()

		var h domain.MeetingHeadline
		if !decodeBody(w, r, &h) {
			return
		}
		h.MeetingID = chi.URLParam(r, "meetingId")

		created, err := svc.CreateHeadline(ctx, &h)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// --- Todos ---

func listTodosHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/meetings/{meetingId}/todos")
		defer span.End()

		todos, err := svc.ListTodos(ctx, chi.URLParam(r, "meetingId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, todos)
	}
}

func createTodoHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/meetings/{meetingId}/todos")
		defer span.End()

		var todo domain.MeetingTodo
		if !decodeBody(w, r, &todo) {
			return
		}
		todo.MeetingID = chi.URLParam(r, "meetingId")

		created, err := svc.CreateTodo(ctx, &todo)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func completeTodoHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/meetings/todos/{todoId}")
		defer span.End()

		var req struct {
			Completed bool `json:"completed"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		todo, err := svc.CompleteTodo(ctx, chi.URLParam(r, "todoId"), req.Completed)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, todo)
	}
}
