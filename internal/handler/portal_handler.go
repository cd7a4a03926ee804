package handler

import (
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Portal do cliente - /v1/portal (viewer)
// ============================================================

func portalOverviewHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/portal")
		defer span.End()

		view, err := svc.PortalOverview(ctx, SessionFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func portalFilesHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/portal/files")
		defer span.End()

		files, err := svc.PortalFiles(ctx, SessionFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, files)
	}
}

func portalApprovalsHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/portal/approvals")
		defer span.End()

		approvals, err := svc.PortalApprovals(ctx, SessionFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, approvals)
	}
}

func portalReviewHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/portal/approvals/{approvalId}/review")
		defer span.End()

		var req domain.ApprovalReviewRequest
		if !decodeBody(w, r, &req) {
			return
		}

		approval, err := svc.PortalReviewApproval(ctx, SessionFromContext(r.Context()), chi.URLParam(r, "approvalId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, approval)
	}
}
