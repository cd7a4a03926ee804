package handler

import (
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Dashboard - GET /v1/dashboard
// ============================================================

func dashboardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		// Load never fails outright; degraded sources are listed in the
		// response.
		writeJSON(w, http.StatusOK, svc.Load(ctx))
	}
}

// ============================================================
// Relatórios - GET /v1/reports/summary
// ============================================================

func reportSummaryHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/reports/summary")
		defer span.End()

		datePreset := r.URL.Query().Get("range")
		if datePreset == "" {
			datePreset = "last_30d"
		}

		summary, err := svc.ReportSummary(ctx, datePreset)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
