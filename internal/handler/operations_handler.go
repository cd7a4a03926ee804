package handler

import (
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Rocks - /v1/rocks
// ============================================================

func listRocksHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/rocks")
		defer span.End()

		rocks, err := svc.ListRocks(ctx, r.URL.Query().Get("quarter"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rocks)
	}
}

func createRockHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/rocks")
		defer span.End()

		var req domain.RockRequest
		if !decodeBody(w, r, &req) {
			return
		}

		rock, err := svc.CreateRock(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, rock)
	}
}

func updateRockHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/rocks/{rockId}")
		defer span.End()

		updates, ok := decodeUpdates(w, r)
		if !ok {
			return
		}

		rock, err := svc.UpdateRock(ctx, chi.URLParam(r, "rockId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rock)
	}
}

func deleteRockHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/rocks/{rockId}")
		defer span.End()

		if err := svc.DeleteRock(ctx, chi.URLParam(r, "rockId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Scorecard - /v1/scorecard
// ============================================================

func listScorecardHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/scorecard")
		defer span.End()

		metrics, err := svc.ListScorecard(ctx, r.URL.Query().Get("week"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, metrics)
	}
}

func createScorecardHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/scorecard")
		defer span.End()

		var req domain.ScorecardMetricRequest
		if !decodeBody(w, r, &req) {
			return
		}

		metric, err := svc.CreateScorecardMetric(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, metric)
	}
}

func updateScorecardHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/scorecard/{metricId}")
		defer span.End()

		updates, ok := decodeUpdates(w, r)
		if !ok {
			return
		}

		metric, err := svc.UpdateScorecardMetric(ctx, chi.URLParam(r, "metricId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, metric)
	}
}
