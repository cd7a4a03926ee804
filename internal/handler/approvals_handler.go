package handler

import (
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Aprovações - /v1/approvals
// ============================================================

func listApprovalsHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/approvals")
		defer span.End()

		q := r.URL.Query()
		approvals, err := svc.ListApprovals(ctx, q.Get("status"), q.Get("client_id"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, approvals)
	}
}

func submitApprovalHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/approvals")
		defer span.End()

		session := SessionFromContext(r.Context())
		var req domain.ApprovalRequest
		if !decodeBody(w, r, &req) {
			return
		}

		approval, err := svc.SubmitApproval(ctx, session.UserID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, approval)
	}
}

func reviewApprovalHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/approvals/{approvalId}/review")
		defer span.End()

		approvalID := chi.URLParam(r, "approvalId")
		span.SetAttributes(attribute.String("approval.id", approvalID))

		session := SessionFromContext(r.Context())
		var req domain.ApprovalReviewRequest
		if !decodeBody(w, r, &req) {
			return
		}

		approval, err := svc.ReviewApproval(ctx, session.UserID, approvalID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, approval)
	}
}
