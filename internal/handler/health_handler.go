package handler

import (
	"net/http"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"

	"go.uber.org/zap"
)

// healthzHandler probes the Supabase connection and reports per-dependency
// status.
func healthzHandler(pinger Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /healthz")
		defer span.End()

		start := time.Now()
		err := pinger.Ping(ctx)
		latency := time.Since(start).Milliseconds()

		supabase := domain.ServiceHealth{
			Name:        "supabase",
			Status:      "healthy",
			LatencyMs:   latency,
			LastChecked: time.Now().UTC().Format(time.RFC3339),
		}
		status := "healthy"
		code := http.StatusOK
		if err != nil {
			logger.Warn("healthz: supabase probe failed", zap.Error(err))
			supabase.Status = "unhealthy"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		writeJSON(w, code, domain.HealthStatus{
			Status:   status,
			Services: []domain.ServiceHealth{supabase},
		})
	}
}

// readyzHandler reports process readiness. The binary serves as soon as
// the router is up; dependency health lives in /healthz.
func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
