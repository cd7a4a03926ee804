package handler

import (
	"net/http"
	"strings"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Autenticação - /v1/auth/*
// ============================================================

func authLoginHandler(sessions *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/login")
		defer span.End()

		var req domain.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := sessions.Login(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func authRefreshHandler(sessions *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/refresh")
		defer span.End()

		var req domain.RefreshRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := sessions.Refresh(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func authLogoutHandler(sessions *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/logout")
		defer span.End()

		token := ""
		if parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2); len(parts) == 2 {
			token = parts[1]
		}
		if err := sessions.Logout(ctx, token); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// authSessionHandler echoes the derived session, which the SPA uses to
// hydrate its auth context on reload.
func authSessionHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/auth/session")
		defer span.End()

		session := SessionFromContext(r.Context())
		if session == nil {
			writeError(w, http.StatusUnauthorized, "sessão não encontrada")
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

// ============================================================
// Navegação - GET /v1/navigation
// ============================================================

func navigationHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/navigation")
		defer span.End()

		session := SessionFromContext(r.Context())
		if session == nil {
			writeError(w, http.StatusUnauthorized, "sessão não encontrada")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"role":     session.Role,
			"sections": session.Sections,
		})
	}
}
