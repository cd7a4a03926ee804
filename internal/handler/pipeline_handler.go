package handler

import (
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Pipeline de vendas - /v1/pipeline/deals
// ============================================================

func listDealsHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/pipeline/deals")
		defer span.End()

		deals, err := svc.ListDeals(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, deals)
	}
}

func createDealHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/pipeline/deals")
		defer span.End()

		var req domain.DealRequest
		if !decodeBody(w, r, &req) {
			return
		}

		deal, err := svc.CreateDeal(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, deal)
	}
}

func updateDealHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/pipeline/deals/{dealId}")
		defer span.End()

		updates, ok := decodeUpdates(w, r)
		if !ok {
			return
		}

		deal, err := svc.UpdateDeal(ctx, chi.URLParam(r, "dealId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, deal)
	}
}

func deleteDealHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/pipeline/deals/{dealId}")
		defer span.End()

		if err := svc.DeleteDeal(ctx, chi.URLParam(r, "dealId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
