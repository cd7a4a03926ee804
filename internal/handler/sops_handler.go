package handler

import (
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Processos - /v1/sops (biblioteca PARA)
// ============================================================

func listSOPsHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/sops")
		defer span.End()

		q := r.URL.Query()
		sops, err := svc.ListSOPs(ctx, domain.SOPFilter{
			Category: q.Get("category"),
			Tag:      q.Get("tag"),
			Search:   q.Get("search"),
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, sops)
	}
}

func getSOPHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/sops/{sopId}")
		defer span.End()

		sop, err := svc.GetSOP(ctx, chi.URLParam(r, "sopId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, sop)
	}
}

func createSOPHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/sops")
		defer span.End()

		session := SessionFromContext(r.Context())
		var req domain.SOPRequest
		if !decodeBody(w, r, &req) {
			return
		}

		sop, err := svc.CreateSOP(ctx, session.UserID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, sop)
	}
}

func updateSOPHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/sops/{sopId}")
		defer span.End()

		updates, ok := decodeUpdates(w, r)
		if !ok {
			return
		}

		sop, err := svc.UpdateSOP(ctx, chi.URLParam(r, "sopId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, sop)
	}
}

func deleteSOPHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/sops/{sopId}")
		defer span.End()

		if err := svc.DeleteSOP(ctx, chi.URLParam(r, "sopId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
