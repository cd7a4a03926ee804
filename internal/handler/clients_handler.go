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
// Clientes - /v1/clients
// ============================================================

func listClientsHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/clients")
		defer span.End()

		clients, err := svc.ListClients(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, clients)
	}
}

func getClientHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/clients/{clientId}")
		defer span.End()

		clientID := chi.URLParam(r, "clientId")
		span.SetAttributes(attribute.String("client.id", clientID))

		client, err := svc.GetClient(ctx, clientID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, client)
	}
}

func createClientHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/clients")
		defer span.End()

		var req domain.ClientRequest
		if !decodeBody(w, r, &req) {
			return
		}

		client, err := svc.CreateClient(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, client)
	}
}

func updateClientHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/clients/{clientId}")
		defer span.End()

		updates, ok := decodeUpdates(w, r)
		if !ok {
			return
		}

		client, err := svc.UpdateClient(ctx, chi.URLParam(r, "clientId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, client)
	}
}

func deleteClientHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/clients/{clientId}")
		defer span.End()

		if err := svc.DeleteClient(ctx, chi.URLParam(r, "clientId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
