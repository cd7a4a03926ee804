package handler

import (
	"fmt"
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Tarefas - /v1/tasks (kanban)
// ============================================================

func listTasksHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/tasks")
		defer span.End()

		tasks, err := svc.ListTasks(ctx, r.URL.Query().Get("client_id"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tasks)
	}
}

func createTaskHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/tasks")
		defer span.End()

		var req domain.TaskRequest
		if !decodeBody(w, r, &req) {
			return
		}

		task, err := svc.CreateTask(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, task)
	}
}

func updateTaskHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/tasks/{taskId}")
		defer span.End()

		updates, ok := decodeUpdates(w, r)
		if !ok {
			return
		}

		task, err := svc.UpdateTask(ctx, chi.URLParam(r, "taskId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, task)
	}
}

func moveTaskHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/tasks/{taskId}/move")
		defer span.End()

		taskID := chi.URLParam(r, "taskId")
		span.SetAttributes(attribute.String("task.id", taskID))

		var req domain.TaskMoveRequest
		if !decodeBody(w, r, &req) {
			return
		}

		task, err := svc.MoveTask(ctx, taskID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, task)
	}
}

func deleteTaskHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/tasks/{taskId}")
		defer span.End()

		if err := svc.DeleteTask(ctx, chi.URLParam(r, "taskId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// taskEventsHandler streams board reload hints over SSE. Each event is a
// bare signal; the client refetches the full task list on receipt.
func taskEventsHandler(watcher *service.TaskWatcher, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming não suportado")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		hints, cancel := watcher.Subscribe()
		defer cancel()

		fmt.Fprint(w, "event: connected\ndata: {}\n\n")
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-hints:
				fmt.Fprint(w, "event: reload\ndata: {}\n\n")
				flusher.Flush()
			}
		}
	}
}
