package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const sessionKey contextKey = "session"

// JWTAuthMiddleware validates Bearer tokens, derives the caller's session
// (profile + role + visible sections) and injects it into context.
func JWTAuthMiddleware(sessions *service.SessionService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Token de autenticação não fornecido")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "Formato de token inválido")
				return
			}

			claims, err := sessions.ValidateToken(parts[1])
			if err != nil {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			session := sessions.CurrentSession(r.Context(), claims)
			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the authenticated session from context.
func SessionFromContext(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionKey).(*domain.Session)
	return s
}

// RequireSection gates a route group on the navigation policy. Data-level
// access stays with Supabase RLS; this keeps roles out of screens their
// sidebar never shows.
func RequireSection(section domain.Section, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromContext(r.Context())
			if session == nil {
				writeError(w, http.StatusUnauthorized, "sessão não encontrada")
				return
			}
			if !service.CanAccess(session.Role, section) {
				logger.Warn("section access denied",
					zap.String("user_id", session.UserID),
					zap.String("role", string(session.Role)),
					zap.String("section", string(section)),
				)
				writeError(w, http.StatusForbidden, "seu papel não tem acesso a esta área")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a route group on the admin role.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromContext(r.Context())
			if session == nil {
				writeError(w, http.StatusUnauthorized, "sessão não encontrada")
				return
			}
			if !session.IsAdmin {
				logger.Warn("admin route denied",
					zap.String("user_id", session.UserID),
					zap.String("role", string(session.Role)),
				)
				writeError(w, http.StatusForbidden, "apenas administradores")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
