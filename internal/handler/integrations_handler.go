package handler

import (
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Integrações - /v1/integrations
// ============================================================

func saveCredentialsHandler(svc *service.CredentialService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/integrations/{provider}/credentials")
		defer span.End()

		provider := chi.URLParam(r, "provider")
		span.SetAttributes(attribute.String("provider", provider))

		var creds map[string]string
		if !decodeBody(w, r, &creds) {
			return
		}

		integ, err := svc.Save(ctx, provider, creds)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		// Credential values never go back to the browser.
		integ.Credentials = nil
		writeJSON(w, http.StatusOK, integ)
	}
}

func getIntegrationHandler(svc *service.CredentialService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/integrations/{provider}")
		defer span.End()

		provider := chi.URLParam(r, "provider")
		span.SetAttributes(attribute.String("provider", provider))

		integ, err := svc.Get(ctx, provider)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		integ.Credentials = nil
		writeJSON(w, http.StatusOK, integ)
	}
}

// fetchResponse wraps provider data with its source tag so the SPA can
// label mock and degraded results.
type fetchResponse struct {
	Data any `json:"data"`
	Meta any `json:"meta"`
}

func metaInsightsHandler(svc *service.IntegrationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/integrations/meta/insights")
		defer span.End()

		datePreset := r.URL.Query().Get("range")
		if datePreset == "" {
			datePreset = "last_30d"
		}

		insights, meta := svc.AdsInsights(ctx, datePreset)
		writeJSON(w, http.StatusOK, fetchResponse{Data: insights, Meta: meta})
	}
}

func clickupTasksHandler(svc *service.IntegrationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/integrations/clickup/tasks")
		defer span.End()

		tasks, meta := svc.TrackerTasks(ctx)
		writeJSON(w, http.StatusOK, fetchResponse{Data: tasks, Meta: meta})
	}
}

func notionPagesHandler(svc *service.IntegrationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/integrations/notion/pages")
		defer span.End()

		pages, meta := svc.WikiPages(ctx, r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, fetchResponse{Data: pages, Meta: meta})
	}
}

func driveFilesHandler(svc *service.IntegrationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/integrations/drive/files")
		defer span.End()

		files, meta := svc.DriveFiles(ctx, r.URL.Query().Get("folder"))
		writeJSON(w, http.StatusOK, fetchResponse{Data: files, Meta: meta})
	}
}
